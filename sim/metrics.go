package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates outcome counters and waiting-time statistics for one run.
type Metrics struct {
	Treated   int // patients discharged after treatment
	Dead      int // RED patients whose timeout fired while waiting
	Abandoned int // WHITE patients whose timeout fired while waiting

	Added       int // patients injected via AddPatient
	Escalations int // YELLOW→RED transitions in the waiting room
	StaleEvents int // TIMEOUT events discarded because the patient had moved on
	Events      int // events dispatched, stale ones included

	TreatedByCode map[Status]int   // keyed by the code held when the room was assigned
	Admissions    map[Status]int   // room assignments per code
	TotalWait     map[Status]int64 // sum of (TreatmentStart - QueueTime) per code
	MaxWait       int64
	PeakWaiting   int   // largest waiting-room population seen after a room assignment pass
	SimEndedTime  int64 // timestamp of the last dispatched event
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TreatedByCode: make(map[Status]int),
		Admissions:    make(map[Status]int),
		TotalWait:     make(map[Status]int64),
	}
}

func (m *Metrics) recordAdmission(code Status, wait int64) {
	m.Admissions[code]++
	m.TotalWait[code] += wait
	if wait > m.MaxWait {
		m.MaxWait = wait
	}
}

func (m *Metrics) observeWaiting(n int) {
	if n > m.PeakWaiting {
		m.PeakWaiting = n
	}
}

// MeanWait returns the average time patients of code waited for a room,
// or 0 if none were admitted.
func (m *Metrics) MeanWait(code Status) float64 {
	n := m.Admissions[code]
	if n == 0 {
		return 0
	}
	return float64(m.TotalWait[code]) / float64(n)
}

// Print writes a human-readable report to w.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Emergency Department Metrics ===")
	fmt.Fprintf(w, "Patients Added       : %d\n", m.Added)
	fmt.Fprintf(w, "Treated              : %d\n", m.Treated)
	fmt.Fprintf(w, "Abandoned            : %d\n", m.Abandoned)
	fmt.Fprintf(w, "Dead                 : %d\n", m.Dead)
	fmt.Fprintf(w, "Escalations          : %d\n", m.Escalations)
	fmt.Fprintf(w, "Stale Events         : %d\n", m.StaleEvents)
	fmt.Fprintf(w, "Peak Waiting Room    : %d\n", m.PeakWaiting)
	for _, code := range []Status{StatusRed, StatusYellow, StatusWhite} {
		if m.Admissions[code] == 0 {
			continue
		}
		fmt.Fprintf(w, "Mean Wait (%-6s)   : %.2f\n", code, m.MeanWait(code))
	}
	fmt.Fprintf(w, "Max Wait             : %d\n", m.MaxWait)
	fmt.Fprintf(w, "Simulation Ended At  : %d\n", m.SimEndedTime)
}
