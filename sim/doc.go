// Package sim provides the discrete-event simulation engine for an emergency
// department with a fixed number of treatment rooms.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - patient.go: Patient lifecycle (new → white/yellow/red → treating → out/black)
//   - event.go: Event types (triage, timeout, free_studio) and the EventQueue
//   - waiting_room.go: severity-then-arrival ordering of waiting patients
//   - simulator.go, handlers.go: the event loop and the three event handlers
//
// # Ordering
//
// Events are processed by (timestamp, type priority, insertion sequence), so
// two runs with identical inputs and a deterministic SeverityPolicy produce
// identical outcomes. Rooms are assigned once per instant, after all
// discharges and triages at that timestamp and before its timeouts.
//
// Timeouts are never removed from the queue. A timeout that fires after its
// patient was treated, discharged or escalated is discarded by its handler.
//
// # Extension Points
//
//   - SeverityPolicy: assigns the triage code (uniform, weighted, fixed, scripted)
//   - Observer: called once per dispatched event (see sim/trace for a recorder)
//
// Arrival generation lives in sim/workload.
package sim
