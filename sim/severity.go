package sim

import (
	"fmt"
	"math/rand"
)

// SeverityPolicy assigns a triage code when a patient's triage completes.
// Implementations must return StatusWhite, StatusYellow or StatusRed and
// must not modify the patient.
type SeverityPolicy interface {
	Assign(p *Patient, now int64) Status
}

// SeverityFunc adapts a plain function to SeverityPolicy.
type SeverityFunc func(p *Patient, now int64) Status

func (f SeverityFunc) Assign(p *Patient, now int64) Status {
	return f(p, now)
}

// UniformSeverity draws each code with probability 1/3.
type UniformSeverity struct {
	rng *rand.Rand
}

// NewUniformSeverity creates a uniform policy drawing from rng.
func NewUniformSeverity(rng *rand.Rand) *UniformSeverity {
	return &UniformSeverity{rng: rng}
}

func (u *UniformSeverity) Assign(_ *Patient, _ int64) Status {
	switch u.rng.Intn(3) {
	case 0:
		return StatusWhite
	case 1:
		return StatusYellow
	default:
		return StatusRed
	}
}

// SeverityMix holds relative weights for WeightedSeverity. Weights need not sum to 1.
type SeverityMix struct {
	White  float64
	Yellow float64
	Red    float64
}

// WeightedSeverity draws codes in proportion to a SeverityMix.
type WeightedSeverity struct {
	rng *rand.Rand
	mix SeverityMix
	sum float64
}

// NewWeightedSeverity validates mix and creates a weighted policy.
func NewWeightedSeverity(rng *rand.Rand, mix SeverityMix) (*WeightedSeverity, error) {
	if mix.White < 0 || mix.Yellow < 0 || mix.Red < 0 {
		return nil, fmt.Errorf("severity weights must be >= 0, got %+v", mix)
	}
	sum := mix.White + mix.Yellow + mix.Red
	if sum <= 0 {
		return nil, fmt.Errorf("severity weights must not all be zero")
	}
	return &WeightedSeverity{rng: rng, mix: mix, sum: sum}, nil
}

func (w *WeightedSeverity) Assign(_ *Patient, _ int64) Status {
	x := w.rng.Float64() * w.sum
	if x < w.mix.White {
		return StatusWhite
	}
	if x < w.mix.White+w.mix.Yellow {
		return StatusYellow
	}
	return StatusRed
}

// FixedSeverity assigns the same code to every patient.
type FixedSeverity struct {
	Code Status
}

func (f *FixedSeverity) Assign(_ *Patient, _ int64) Status {
	return f.Code
}

// ScriptedSeverity assigns codes by patient ID, falling back to Fallback.
// Used to force outcomes in tests and replayed scenarios.
type ScriptedSeverity struct {
	Codes    map[string]Status
	Fallback Status
}

func (s *ScriptedSeverity) Assign(p *Patient, _ int64) Status {
	if code, ok := s.Codes[p.ID]; ok {
		return code
	}
	return s.Fallback
}

// validSeverityPolicies maps accepted policy names.
var validSeverityPolicies = map[string]bool{
	"":         true, // defaults to uniform
	"uniform":  true,
	"weighted": true,
	"white":    true,
	"yellow":   true,
	"red":      true,
}

// IsValidSeverityPolicy returns true if name is a recognized severity policy.
func IsValidSeverityPolicy(name string) bool {
	return validSeverityPolicies[name]
}

// NewSeverityPolicy creates a policy by name. "white", "yellow" and "red"
// force that code for every patient; mix is only read by "weighted".
func NewSeverityPolicy(name string, rng *rand.Rand, mix SeverityMix) (SeverityPolicy, error) {
	if !IsValidSeverityPolicy(name) {
		return nil, fmt.Errorf("unknown severity policy %q", name)
	}
	switch name {
	case "", "uniform":
		return NewUniformSeverity(rng), nil
	case "weighted":
		w, err := NewWeightedSeverity(rng, mix)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return &FixedSeverity{Code: Status(name)}, nil
	}
}
