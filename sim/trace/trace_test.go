package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"outcomes", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestSimulationTrace_RecordEvent_FiltersByLevel(t *testing.T) {
	changed := EventRecord{Clock: 300, Type: "triage", PatientID: "p1", Before: "new", After: "white"}
	unchanged := EventRecord{Clock: 2100, Type: "timeout", PatientID: "p1", Before: "out", After: "out", Stale: true}

	tests := []struct {
		level TraceLevel
		want  int
	}{
		{TraceLevelNone, 0},
		{"", 0},
		{TraceLevelEvents, 2},
		{TraceLevelOutcomes, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			st := NewSimulationTrace(TraceConfig{Level: tt.level})
			st.RecordEvent(changed)
			st.RecordEvent(unchanged)
			if len(st.Events) != tt.want {
				t.Errorf("recorded %d events, want %d", len(st.Events), tt.want)
			}
		})
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	if NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level should be disabled")
	}
	if NewSimulationTrace(TraceConfig{}).Enabled() {
		t.Error("empty level should be disabled")
	}
	if !NewSimulationTrace(TraceConfig{Level: TraceLevelEvents}).Enabled() {
		t.Error("events level should be enabled")
	}
}
