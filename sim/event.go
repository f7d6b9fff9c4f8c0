package sim

import (
	"container/heap"
	"fmt"
)

// EventType tags what an Event does when dispatched.
type EventType string

const (
	EventTriage     EventType = "triage"
	EventTimeout    EventType = "timeout"
	EventFreeStudio EventType = "free_studio"
)

// EventTypePriority breaks ties between events sharing a timestamp.
// Lower values are processed first: rooms are released and new codes assigned
// before any waiting-room timeout at the same instant is evaluated.
var EventTypePriority = map[EventType]int{
	EventFreeStudio: 0,
	EventTriage:     1,
	EventTimeout:    2,
}

// Event is an immutable time-stamped action concerning one patient.
// The patient pointer is non-owning; the patient outlives every event about it.
type Event struct {
	time    int64
	typ     EventType
	patient *Patient
	assumed Status // patient status when the event was created
	seq     int64  // assigned by EventQueue.Schedule
}

// NewEvent creates an event for p at time t. The event records p's current
// status so a handler can tell whether the event has gone stale.
func NewEvent(t int64, typ EventType, p *Patient) Event {
	return Event{time: t, typ: typ, patient: p, assumed: p.Status}
}

// Timestamp returns the logical time the event fires at.
func (e Event) Timestamp() int64 { return e.time }

// Type returns the event tag.
func (e Event) Type() EventType { return e.typ }

// Patient returns the patient the event concerns.
func (e Event) Patient() *Patient { return e.patient }

// Assumed returns the status the patient had when the event was scheduled.
func (e Event) Assumed() Status { return e.assumed }

// Seq returns the insertion sequence number; zero until scheduled.
func (e Event) Seq() int64 { return e.seq }

func (e Event) String() string {
	id := ""
	if e.patient != nil {
		id = e.patient.ID
	}
	return fmt.Sprintf("Event: (Time: %d, Type: %s, Patient: %s, Seq: %d)", e.time, e.typ, id, e.seq)
}

// eventHeap implements heap.Interface.
// Ordering: timestamp → type priority → sequence number.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	pi, pj := EventTypePriority[h[i].typ], EventTypePriority[h[j].typ]
	if pi != pj {
		return pi < pj
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue is a min-heap of events with a deterministic total order.
// Events are only ever removed through Next; cancelled events stay queued
// and are neutralized by their handler.
type EventQueue struct {
	events eventHeap
	seq    int64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Schedule inserts ev, stamping it with the next sequence number.
func (q *EventQueue) Schedule(ev Event) {
	q.seq++
	ev.seq = q.seq
	heap.Push(&q.events, ev)
}

// Next removes and returns the earliest event. ok is false when the queue is empty.
func (q *EventQueue) Next() (ev Event, ok bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return heap.Pop(&q.events).(Event), true
}

// putBack re-inserts an event returned by Next, keeping its original sequence
// number so its position in the total order is unchanged.
func (q *EventQueue) putBack(ev Event) {
	heap.Push(&q.events, ev)
}

// Len returns the number of queued events, stale ones included.
func (q *EventQueue) Len() int {
	return len(q.events)
}
