package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same key, configuration and arrivals produce identical outcomes.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// DefaultSeed seeds the default severity policy when none is injected.
const DefaultSeed = 42

const (
	// SubsystemArrivals is the RNG subsystem for patient arrival generation.
	// Uses the master seed directly.
	SubsystemArrivals = "arrivals"

	// SubsystemTriage is the RNG subsystem for severity assignment.
	SubsystemTriage = "triage"
)

// PartitionedRNG hands out one independent RNG per subsystem, so drawing
// more arrivals never shifts the sequence of triage codes and vice versa.
//
// Derivation: SubsystemArrivals uses the master seed; every other subsystem
// uses masterSeed XOR fnv1a64(name).
//
// Not thread-safe. Use one PartitionedRNG per Simulator.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached RNG for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemArrivals {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
