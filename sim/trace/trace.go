package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every dispatched event.
	TraceLevelEvents TraceLevel = "events"
	// TraceLevelOutcomes captures only events that changed a patient's status.
	TraceLevelOutcomes TraceLevel = "outcomes"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelEvents:   true,
	TraceLevelOutcomes: true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects event records during a simulation run.
type SimulationTrace struct {
	Config TraceConfig
	Events []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// Enabled reports whether records are kept at all.
func (st *SimulationTrace) Enabled() bool {
	return st.Config.Level != TraceLevelNone && st.Config.Level != ""
}

// RecordEvent appends a record, filtered by the configured level.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	switch st.Config.Level {
	case TraceLevelEvents:
		st.Events = append(st.Events, record)
	case TraceLevelOutcomes:
		if record.Before != record.After {
			st.Events = append(st.Events, record)
		}
	}
}
