package cmd

import (
	"github.com/sirupsen/logrus"

	"github.com/ed-sim/ed-sim/sim"
	"github.com/ed-sim/ed-sim/sim/trace"
)

// toTraceRecord converts a dispatched event into its trace form.
func toTraceRecord(r sim.EventRecord) trace.EventRecord {
	return trace.EventRecord{
		Clock:     r.Event.Timestamp(),
		Type:      string(r.Event.Type()),
		PatientID: r.Event.Patient().ID,
		Before:    string(r.Before),
		After:     string(r.After),
		Stale:     r.Stale,
		Occupied:  r.Occupied,
		Waiting:   r.Waiting,
	}
}

// newObserver returns the observer used by the CLI: every status change is
// logged at info level, and records are appended to st when tracing is on.
// st may be nil.
func newObserver(st *trace.SimulationTrace) sim.Observer {
	return func(r sim.EventRecord) {
		rec := toTraceRecord(r)
		if !rec.Stale && rec.Before != rec.After {
			logrus.Infof("[t %07d] %s %s: %s -> %s (occupied=%d, waiting=%d)",
				rec.Clock, rec.Type, rec.PatientID, rec.Before, rec.After, rec.Occupied, rec.Waiting)
		}
		if st != nil && st.Enabled() {
			st.RecordEvent(rec)
		}
	}
}
