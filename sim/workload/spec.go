package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkloadSpec describes how patients arrive at the department.
// Loaded from YAML via LoadWorkloadSpec(path) or embedded in a scenario file.
type WorkloadSpec struct {
	Version  string      `yaml:"version"`
	Seed     int64       `yaml:"seed"`
	Patients int         `yaml:"patients"`          // 0 = unlimited (use horizon only)
	Start    int64       `yaml:"start,omitempty"`   // logical time of the first possible arrival
	Horizon  int64       `yaml:"horizon,omitempty"` // last admissible arrival time; 0 = none
	Arrival  ArrivalSpec `yaml:"arrival"`
}

// ArrivalSpec configures the arrival process.
type ArrivalSpec struct {
	Process  string   `yaml:"process"`            // "constant", "poisson", "gamma" or "cron"
	Interval int64    `yaml:"interval,omitempty"` // constant spacing, or mean inter-arrival time
	Rate     float64  `yaml:"rate,omitempty"`     // arrivals per time unit; overrides interval for poisson/gamma
	CV       *float64 `yaml:"cv,omitempty"`       // gamma coefficient of variation
	Schedule string   `yaml:"schedule,omitempty"` // cron expression, one firing per Batch arrivals
	Batch    int      `yaml:"batch,omitempty"`    // patients per cron firing (default 1)
}

var validProcesses = map[string]bool{
	"constant": true,
	"poisson":  true,
	"gamma":    true,
	"cron":     true,
}

// IsValidArrivalProcess returns true if name is a recognized arrival process.
func IsValidArrivalProcess(name string) bool {
	return validProcesses[name]
}

// LoadWorkloadSpec reads and strictly parses a workload YAML file.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that the spec describes a finite, well-formed arrival stream.
func (s *WorkloadSpec) Validate() error {
	if s.Patients < 0 {
		return fmt.Errorf("patients must be >= 0, got %d", s.Patients)
	}
	if s.Start < 0 {
		return fmt.Errorf("start must be >= 0, got %d", s.Start)
	}
	if s.Horizon < 0 {
		return fmt.Errorf("horizon must be >= 0, got %d", s.Horizon)
	}
	if s.Patients == 0 && s.Horizon == 0 {
		return fmt.Errorf("at least one of patients or horizon must be set")
	}
	return validateArrival(&s.Arrival)
}

func validateArrival(a *ArrivalSpec) error {
	if !IsValidArrivalProcess(a.Process) {
		return fmt.Errorf("unknown arrival process %q; valid: constant, poisson, gamma, cron", a.Process)
	}
	if a.Interval < 0 {
		return fmt.Errorf("arrival interval must be >= 0, got %d", a.Interval)
	}
	if a.Rate < 0 || math.IsNaN(a.Rate) || math.IsInf(a.Rate, 0) {
		return fmt.Errorf("arrival rate must be a finite value >= 0, got %f", a.Rate)
	}
	switch a.Process {
	case "constant":
		if a.Interval <= 0 {
			return fmt.Errorf("constant arrivals require interval > 0")
		}
	case "poisson", "gamma":
		if a.Rate == 0 && a.Interval == 0 {
			return fmt.Errorf("%s arrivals require rate or interval", a.Process)
		}
		if a.CV != nil && *a.CV <= 0 {
			return fmt.Errorf("arrival cv must be > 0, got %f", *a.CV)
		}
	case "cron":
		if _, err := parseSchedule(a.Schedule); err != nil {
			return err
		}
		if a.Batch < 0 {
			return fmt.Errorf("cron batch must be >= 0, got %d", a.Batch)
		}
	}
	return nil
}
