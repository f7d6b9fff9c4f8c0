package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation marks a logic defect detected while dispatching an event.
	// A run that reports it has no defined outcome.
	ErrInvariantViolation = errors.New("simulation invariant violated")

	// ErrInvalidPatient is returned by AddPatient for unusable input.
	ErrInvalidPatient = errors.New("invalid patient")
)

// InvariantError describes the event and patient state that broke an invariant.
type InvariantError struct {
	Event  Event
	Status Status // patient status observed at dispatch
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s (status %q, %s)", ErrInvariantViolation, e.Reason, e.Status, e.Event)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolation
}
