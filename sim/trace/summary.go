package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents      int
	StaleEvents      int
	UniquePatients   int
	PeakWaiting      int
	TypeDistribution map[string]int // event type → count
	Transitions      map[string]int // "before->after" → count, stale events excluded
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TypeDistribution: make(map[string]int),
		Transitions:      make(map[string]int),
	}
	if st == nil {
		return summary
	}

	patients := make(map[string]struct{})
	summary.TotalEvents = len(st.Events)
	for _, e := range st.Events {
		summary.TypeDistribution[e.Type]++
		patients[e.PatientID] = struct{}{}
		if e.Waiting > summary.PeakWaiting {
			summary.PeakWaiting = e.Waiting
		}
		if e.Stale {
			summary.StaleEvents++
			continue
		}
		summary.Transitions[e.Before+"->"+e.After]++
	}
	summary.UniquePatients = len(patients)

	return summary
}
