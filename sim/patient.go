// Defines the Patient struct that models a single person moving through the
// emergency department, and the Status state machine that drives it.

package sim

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a patient.
// WHITE, YELLOW and RED double as triage severity codes.
type Status string

const (
	StatusNew      Status = "new"
	StatusWhite    Status = "white"
	StatusYellow   Status = "yellow"
	StatusRed      Status = "red"
	StatusTreating Status = "treating"
	StatusOut      Status = "out"
	StatusBlack    Status = "black"
)

// severityRank orders the waiting codes; higher is more urgent.
var severityRank = map[Status]int{
	StatusWhite:  1,
	StatusYellow: 2,
	StatusRed:    3,
}

// IsWaiting reports whether s is a triage code, i.e. a status a patient
// can hold while sitting in the waiting room.
func (s Status) IsWaiting() bool {
	_, ok := severityRank[s]
	return ok
}

// IsTerminal reports whether s is OUT or BLACK.
func (s Status) IsTerminal() bool {
	return s == StatusOut || s == StatusBlack
}

// ParseSeverity maps a case-insensitive code name ("white", "yellow", "red")
// to its Status.
func ParseSeverity(name string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(name)))
	if !s.IsWaiting() {
		return "", fmt.Errorf("unknown severity code %q (valid: white, yellow, red)", name)
	}
	return s, nil
}

// Patient models one patient's lifecycle in the simulation.
// Patients are created by the caller and mutated only by Simulator event handlers.
type Patient struct {
	ID string // Unique identifier for the patient

	Status   Status // new, white, yellow, red, treating, out, black
	Severity Status // Last triage code assigned; kept after the patient leaves the waiting room

	ArrivalTime    int64 // Logical time the patient arrived (before triage)
	QueueTime      int64 // Logical time the patient entered the waiting room; meaningful only while waiting
	TreatmentStart int64 // Logical time the patient was assigned a room
	Escalated      bool  // Whether the patient was escalated from YELLOW to RED while waiting
}

// NewPatient returns a patient in the NEW status.
func NewPatient(id string) *Patient {
	return &Patient{ID: id, Status: StatusNew}
}

func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %s, Status: %s, QueueTime: %d)", p.ID, p.Status, p.QueueTime)
}
