package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate and NewSimulator.
var ErrInvalidConfig = errors.New("invalid simulator config")

// Durations holds one logical-time duration per triage code.
type Durations struct {
	White  int64
	Yellow int64
	Red    int64
}

// For returns the duration for code. ok is false if code is not a waiting code.
func (d Durations) For(code Status) (dur int64, ok bool) {
	switch code {
	case StatusWhite:
		return d.White, true
	case StatusYellow:
		return d.Yellow, true
	case StatusRed:
		return d.Red, true
	}
	return 0, false
}

func (d Durations) validate(name string) error {
	for _, code := range []Status{StatusWhite, StatusYellow, StatusRed} {
		if v, _ := d.For(code); v <= 0 {
			return fmt.Errorf("%w: %s %s duration must be > 0, got %d", ErrInvalidConfig, name, code, v)
		}
	}
	return nil
}

// Config groups the department capacity and all timing parameters.
// All durations are in the same logical time unit as event timestamps.
type Config struct {
	Rooms     int       // treatment rooms (studios); 0 means nobody is ever treated
	Triage    int64     // delay between arrival and code assignment
	Treatment Durations // time a patient occupies a room, per code
	Timeout   Durations // time a patient tolerates the waiting room, per code
}

// DefaultConfig returns the stock timings with the given number of rooms.
func DefaultConfig(rooms int) Config {
	return Config{
		Rooms:     rooms,
		Triage:    5 * 60,
		Treatment: Durations{White: 10 * 60, Yellow: 15 * 60, Red: 30 * 60},
		Timeout:   Durations{White: 30 * 60, Yellow: 30 * 60, Red: 60 * 60},
	}
}

// Validate rejects negative capacity and non-positive durations.
func (c Config) Validate() error {
	if c.Rooms < 0 {
		return fmt.Errorf("%w: rooms must be >= 0, got %d", ErrInvalidConfig, c.Rooms)
	}
	if c.Triage <= 0 {
		return fmt.Errorf("%w: triage duration must be > 0, got %d", ErrInvalidConfig, c.Triage)
	}
	if err := c.Treatment.validate("treatment"); err != nil {
		return err
	}
	return c.Timeout.validate("timeout")
}
