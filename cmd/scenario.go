package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ed-sim/ed-sim/sim"
	"github.com/ed-sim/ed-sim/sim/workload"
)

// Department describes the rooms and durations of the emergency department.
type Department struct {
	Rooms     int           `yaml:"rooms"`
	Triage    int64         `yaml:"triage"`
	Treatment sim.Durations `yaml:"treatment"`
	Timeout   sim.Durations `yaml:"timeout"`
}

// SeverityConfig selects the triage policy.
type SeverityConfig struct {
	Policy  string          `yaml:"policy"` // "uniform" (default), "weighted", "white", "yellow", "red"
	Seed    int64           `yaml:"seed"`
	Weights sim.SeverityMix `yaml:"weights,omitempty"`
}

// Scenario represents the full scenario YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Department Department            `yaml:"department"`
	Severity   SeverityConfig        `yaml:"severity"`
	Workload   workload.WorkloadSpec `yaml:"workload"`
}

// DefaultScenario returns the scenario used when no file is given:
// three rooms and fifty patients arriving every ten minutes.
func DefaultScenario() *Scenario {
	cfg := sim.DefaultConfig(3)
	return &Scenario{
		Department: Department{
			Rooms:     cfg.Rooms,
			Triage:    cfg.Triage,
			Treatment: cfg.Treatment,
			Timeout:   cfg.Timeout,
		},
		Severity: SeverityConfig{Policy: "uniform", Seed: sim.DefaultSeed},
		Workload: workload.WorkloadSpec{
			Version:  "1",
			Seed:     sim.DefaultSeed,
			Patients: 50,
			Arrival:  workload.ArrivalSpec{Process: "constant", Interval: 600},
		},
	}
}

// LoadScenario parses a scenario file on top of DefaultScenario, so sections
// left out of the file keep their defaults. Unknown fields are an error.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	sc := DefaultScenario()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return sc, nil
}

// Config converts the department section into a validated simulator config.
func (sc *Scenario) Config() (sim.Config, error) {
	cfg := sim.Config{
		Rooms:     sc.Department.Rooms,
		Triage:    sc.Department.Triage,
		Treatment: sc.Department.Treatment,
		Timeout:   sc.Department.Timeout,
	}
	return cfg, cfg.Validate()
}

// Policy builds the severity policy, seeded on the triage subsystem.
func (sc *Scenario) Policy() (sim.SeverityPolicy, error) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(sc.Severity.Seed)).ForSubsystem(sim.SubsystemTriage)
	return sim.NewSeverityPolicy(sc.Severity.Policy, rng, sc.Severity.Weights)
}

// Validate checks every section of the scenario.
func (sc *Scenario) Validate() error {
	if _, err := sc.Config(); err != nil {
		return err
	}
	if !sim.IsValidSeverityPolicy(sc.Severity.Policy) {
		return fmt.Errorf("unknown severity policy %q", sc.Severity.Policy)
	}
	if _, err := sc.Policy(); err != nil {
		return err
	}
	if err := sc.Workload.Validate(); err != nil {
		return fmt.Errorf("workload: %w", err)
	}
	return nil
}
