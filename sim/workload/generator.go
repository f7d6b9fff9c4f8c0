package workload

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ed-sim/ed-sim/sim"
)

// patientNamespace scopes the name-based UUIDs given to generated patients.
var patientNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ed-sim/patients"))

// Arrival pairs a fresh patient with the logical time it reaches the department.
type Arrival struct {
	Patient *sim.Patient
	Time    int64
}

// PatientID returns the deterministic ID of the idx-th patient generated with seed.
func PatientID(seed int64, idx int) string {
	return uuid.NewSHA1(patientNamespace, []byte(fmt.Sprintf("%d/%d", seed, idx))).String()
}

// GenerateArrivals creates the arrival stream described by spec.
// Deterministic given the same spec: the same seed yields the same times and IDs.
// Arrivals are returned in time order with fresh NEW patients.
func GenerateArrivals(spec *WorkloadSpec) ([]Arrival, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	var times []int64
	if spec.Arrival.Process == "cron" {
		sched, err := parseSchedule(spec.Arrival.Schedule)
		if err != nil {
			return nil, err
		}
		times = cronArrivals(sched, spec.Start, spec.Horizon, spec.Patients, spec.Arrival.Batch)
	} else {
		sampler, err := NewArrivalSampler(spec.Arrival)
		if err != nil {
			return nil, err
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemArrivals)
		t := spec.Start
		if spec.Arrival.Process != "constant" {
			t += sampler.SampleIAT(rng)
		}
		for spec.Patients == 0 || len(times) < spec.Patients {
			if spec.Horizon > 0 && t > spec.Horizon {
				break
			}
			times = append(times, t)
			t += sampler.SampleIAT(rng)
		}
	}

	arrivals := make([]Arrival, len(times))
	for i, t := range times {
		p := sim.NewPatient(PatientID(spec.Seed, i))
		arrivals[i] = Arrival{Patient: p, Time: t}
	}
	return arrivals, nil
}

// Inject adds every arrival to s in order.
func Inject(s *sim.Simulator, arrivals []Arrival) error {
	for _, a := range arrivals {
		if err := s.AddPatient(a.Patient, a.Time); err != nil {
			return err
		}
	}
	return nil
}
