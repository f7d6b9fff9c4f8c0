package workload

import (
	"math"
	"math/rand"
	"testing"
)

func TestPoissonSampler_MeanIAT_MatchesRate(t *testing.T) {
	// GIVEN a Poisson sampler at one arrival every 600 time units
	rng := rand.New(rand.NewSource(42))
	sampler, err := NewArrivalSampler(ArrivalSpec{Process: "poisson", Interval: 600})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// WHEN 10000 IATs are sampled
	n := 10000
	sum := int64(0)
	for i := 0; i < n; i++ {
		sum += sampler.SampleIAT(rng)
	}
	meanIAT := float64(sum) / float64(n)

	// THEN mean IAT ≈ 600 (within 5%)
	if math.Abs(meanIAT-600)/600 > 0.05 {
		t.Errorf("mean IAT = %.0f, want ≈ 600 (within 5%%)", meanIAT)
	}
}

func TestArrivalSampler_RateOverridesInterval(t *testing.T) {
	sampler, err := NewArrivalSampler(ArrivalSpec{Process: "poisson", Interval: 600, Rate: 0.01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := sampler.(*PoissonSampler)
	if !ok {
		t.Fatalf("got %T, want *PoissonSampler", sampler)
	}
	if p.rate != 0.01 {
		t.Errorf("rate = %v, want 0.01", p.rate)
	}
}

func TestGammaSampler_HighCV_IsBurstierThanPoisson(t *testing.T) {
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))
	cv := 3.0
	gamma, err := NewArrivalSampler(ArrivalSpec{Process: "gamma", Interval: 600, CV: &cv})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	poisson, _ := NewArrivalSampler(ArrivalSpec{Process: "poisson", Interval: 600})

	n := 10000
	gammaIATs := make([]float64, n)
	poissonIATs := make([]float64, n)
	for i := 0; i < n; i++ {
		gammaIATs[i] = float64(gamma.SampleIAT(rng1))
		poissonIATs[i] = float64(poisson.SampleIAT(rng2))
	}

	if got := coefficientOfVariation(gammaIATs); got < 2.0 {
		t.Errorf("gamma CV = %.2f, want > 2.0", got)
	}
	if got := coefficientOfVariation(poissonIATs); got < 0.8 || got > 1.2 {
		t.Errorf("poisson CV = %.2f, want ≈ 1.0", got)
	}
}

func TestConstantSampler_ReturnsInterval(t *testing.T) {
	sampler, _ := NewArrivalSampler(ArrivalSpec{Process: "constant", Interval: 300})
	for i := 0; i < 3; i++ {
		if got := sampler.SampleIAT(nil); got != 300 {
			t.Errorf("SampleIAT() = %d, want 300", got)
		}
	}
}

func TestNewArrivalSampler_CronHasNoSampler(t *testing.T) {
	if _, err := NewArrivalSampler(ArrivalSpec{Process: "cron", Schedule: "*/10 * * * *"}); err == nil {
		t.Error("expected error for cron process")
	}
}

func TestCronArrivals_EveryTenMinutes(t *testing.T) {
	sched, err := parseSchedule("*/10 * * * *")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// start on a firing boundary: the firing at start is included
	got := cronArrivals(sched, 0, 0, 4, 1)
	want := []int64{0, 600, 1200, 1800}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arrival %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCronArrivals_BatchAndHorizon(t *testing.T) {
	sched, _ := parseSchedule("0 * * * *")

	// hourly firings of 2 patients each, horizon ends after the 7200 firing
	got := cronArrivals(sched, 1, 7200, 0, 2)
	want := []int64{3600, 3600, 7200, 7200}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arrival %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestParseSchedule_Invalid(t *testing.T) {
	for _, expr := range []string{"", "not a cron", "61 * * * *"} {
		if _, err := parseSchedule(expr); err == nil {
			t.Errorf("parseSchedule(%q) succeeded, want error", expr)
		}
	}
}

func coefficientOfVariation(vals []float64) float64 {
	n := float64(len(vals))
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= n
	variance := 0.0
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	variance /= n
	return math.Sqrt(variance) / mean
}
