package sim

import (
	"testing"
)

// TestEventQueue_TimestampOrdering tests that events are returned in timestamp order
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()
	p := NewPatient("p1")

	q.Schedule(NewEvent(100, EventTriage, p))
	q.Schedule(NewEvent(50, EventTriage, p))
	q.Schedule(NewEvent(150, EventTriage, p))

	for _, want := range []int64{50, 100, 150} {
		ev, ok := q.Next()
		if !ok {
			t.Fatalf("queue empty, want event at %d", want)
		}
		if ev.Timestamp() != want {
			t.Errorf("event timestamp = %d, want %d", ev.Timestamp(), want)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, len = %d", q.Len())
	}
}

// TestEventQueue_TypePriorityOrdering tests same-timestamp events use type priority
func TestEventQueue_TypePriorityOrdering(t *testing.T) {
	q := NewEventQueue()
	p := NewPatient("p1")

	// scheduled in reverse priority order
	q.Schedule(NewEvent(100, EventTimeout, p))
	q.Schedule(NewEvent(100, EventTriage, p))
	q.Schedule(NewEvent(100, EventFreeStudio, p))

	for _, want := range []EventType{EventFreeStudio, EventTriage, EventTimeout} {
		ev, _ := q.Next()
		if ev.Type() != want {
			t.Errorf("event type = %s, want %s", ev.Type(), want)
		}
	}
}

// TestEventQueue_SequenceOrdering tests same-timestamp same-type events come out in insertion order
func TestEventQueue_SequenceOrdering(t *testing.T) {
	q := NewEventQueue()
	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		q.Schedule(NewEvent(300, EventTriage, NewPatient(id)))
	}

	var lastSeq int64
	for _, want := range ids {
		ev, _ := q.Next()
		if ev.Patient().ID != want {
			t.Errorf("patient = %s, want %s", ev.Patient().ID, want)
		}
		if ev.Seq() <= lastSeq {
			t.Errorf("seq %d not increasing after %d", ev.Seq(), lastSeq)
		}
		lastSeq = ev.Seq()
	}
}

func TestEventQueue_NextOnEmpty(t *testing.T) {
	q := NewEventQueue()
	if _, ok := q.Next(); ok {
		t.Error("Next() on empty queue returned ok = true")
	}
}

func TestEventQueue_PutBackKeepsPosition(t *testing.T) {
	q := NewEventQueue()
	first := NewPatient("first")
	second := NewPatient("second")
	q.Schedule(NewEvent(10, EventTriage, first))
	q.Schedule(NewEvent(10, EventTriage, second))

	ev, _ := q.Next()
	q.putBack(ev)

	ev, _ = q.Next()
	if ev.Patient() != first {
		t.Errorf("after putBack got %s, want first", ev.Patient().ID)
	}
}

func TestNewEvent_CapturesAssumedStatus(t *testing.T) {
	p := NewPatient("p1")
	p.Status = StatusYellow
	ev := NewEvent(2100, EventTimeout, p)

	p.Status = StatusRed
	if ev.Assumed() != StatusYellow {
		t.Errorf("Assumed() = %s, want %s", ev.Assumed(), StatusYellow)
	}
	if ev.Seq() != 0 {
		t.Errorf("unscheduled event has seq %d, want 0", ev.Seq())
	}
}
