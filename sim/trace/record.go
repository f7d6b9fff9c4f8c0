// Package trace provides event-trace recording for emergency department runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// EventRecord captures one dispatched simulation event.
type EventRecord struct {
	Clock     int64
	Type      string // "triage", "timeout" or "free_studio"
	PatientID string
	Before    string // patient status before dispatch
	After     string // patient status after dispatch
	Stale     bool
	Occupied  int
	Waiting   int
}
