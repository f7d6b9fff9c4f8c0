package workload

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Epoch anchors logical time 0 to a wall-clock instant so cron schedules can
// be evaluated. One logical time unit is one second. 2024-01-01 is a Monday.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ArrivalSampler generates inter-arrival times in logical time units.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time. Always >= 1.
	SampleIAT(rng *rand.Rand) int64
}

// ConstantSampler spaces arrivals evenly.
type ConstantSampler struct {
	interval int64
}

func (s *ConstantSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.interval
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1).
type PoissonSampler struct {
	rate float64 // arrivals per time unit
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	iat := int64(rng.ExpFloat64() / s.rate)
	if iat < 1 {
		return 1
	}
	return iat
}

// GammaSampler generates Gamma-distributed inter-arrival times.
// CV > 1 produces bursty arrivals, e.g. several patients from one incident.
type GammaSampler struct {
	shape float64 // 1/CV²
	scale float64 // CV²/rate
}

func (s *GammaSampler) SampleIAT(rng *rand.Rand) int64 {
	iat := int64(gammaRand(rng, s.shape, s.scale))
	if iat < 1 {
		return 1
	}
	return iat
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// rateOf returns arrivals per time unit, preferring an explicit rate.
func rateOf(spec ArrivalSpec) float64 {
	if spec.Rate > 0 {
		return spec.Rate
	}
	return 1.0 / float64(spec.Interval)
}

// NewArrivalSampler creates the sampler for a validated interval-based process.
// Cron schedules are not interval-based; see cronArrivals.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	switch spec.Process {
	case "constant":
		return &ConstantSampler{interval: spec.Interval}, nil
	case "poisson":
		return &PoissonSampler{rate: rateOf(spec)}, nil
	case "gamma":
		cv := 1.0
		if spec.CV != nil {
			cv = *spec.CV
		}
		rate := rateOf(spec)
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{rate: rate}, nil
		}
		return &GammaSampler{shape: shape, scale: cv * cv / rate}, nil
	}
	return nil, fmt.Errorf("arrival process %q has no inter-arrival sampler", spec.Process)
}

func parseSchedule(expr string) (cron.Schedule, error) {
	if expr == "" {
		return nil, fmt.Errorf("cron arrivals require a schedule")
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return sched, nil
}

// cronArrivals returns the logical times at which sched fires, starting at
// start (inclusive) and stopping after limit arrivals or past horizon.
// Each firing yields batch arrivals at the same instant.
func cronArrivals(sched cron.Schedule, start, horizon int64, limit, batch int) []int64 {
	if batch <= 0 {
		batch = 1
	}
	var times []int64
	at := Epoch.Add(time.Duration(start)*time.Second - time.Second)
	for limit == 0 || len(times) < limit {
		at = sched.Next(at)
		if at.IsZero() {
			break
		}
		t := int64(at.Sub(Epoch) / time.Second)
		if horizon > 0 && t > horizon {
			break
		}
		for i := 0; i < batch && (limit == 0 || len(times) < limit); i++ {
			times = append(times, t)
		}
	}
	return times
}
