// Implements the WaitingRoom, which holds triaged patients waiting for a free room.

package sim

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"
)

// waitingEntry is one patient in the waiting room. The sort key is copied
// from the patient at insertion so mutating the patient cannot corrupt the heap;
// a severity change is applied by Remove followed by Push.
type waitingEntry struct {
	patient   *Patient
	rank      int
	queueTime int64
	seq       int64
	index     int // position in the heap, maintained by Swap/Push/Pop
}

type waitingHeap []*waitingEntry

func (h waitingHeap) Len() int { return len(h) }

// Less puts the most urgent code first, then the earliest queue time,
// then the earliest insertion.
func (h waitingHeap) Less(i, j int) bool {
	if h[i].rank != h[j].rank {
		return h[i].rank > h[j].rank
	}
	if h[i].queueTime != h[j].queueTime {
		return h[i].queueTime < h[j].queueTime
	}
	return h[i].seq < h[j].seq
}

func (h waitingHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *waitingHeap) Push(x any) {
	e := x.(*waitingEntry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *waitingHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[0 : n-1]
	return e
}

// WaitingRoom is a priority queue of patients ordered by severity
// (RED > YELLOW > WHITE) and then by QueueTime.
// A position index makes removal of an arbitrary patient O(log n).
type WaitingRoom struct {
	entries waitingHeap
	byID    map[*Patient]*waitingEntry
	seq     int64
}

// NewWaitingRoom creates an empty waiting room.
func NewWaitingRoom() *WaitingRoom {
	return &WaitingRoom{
		entries: make(waitingHeap, 0),
		byID:    make(map[*Patient]*waitingEntry),
	}
}

// Push adds p using its current Status and QueueTime as the sort key.
// p must hold a waiting code and must not already be in the room.
func (wr *WaitingRoom) Push(p *Patient) {
	if p == nil {
		panic("WaitingRoom.Push: patient must not be nil")
	}
	rank, ok := severityRank[p.Status]
	if !ok {
		panic(fmt.Sprintf("WaitingRoom.Push: patient %s has non-waiting status %q", p.ID, p.Status))
	}
	if _, dup := wr.byID[p]; dup {
		panic(fmt.Sprintf("WaitingRoom.Push: patient %s already waiting", p.ID))
	}
	wr.seq++
	e := &waitingEntry{patient: p, rank: rank, queueTime: p.QueueTime, seq: wr.seq}
	heap.Push(&wr.entries, e)
	wr.byID[p] = e
}

// Pop removes and returns the most urgent patient, or nil if the room is empty.
func (wr *WaitingRoom) Pop() *Patient {
	if len(wr.entries) == 0 {
		return nil
	}
	e := heap.Pop(&wr.entries).(*waitingEntry)
	delete(wr.byID, e.patient)
	return e.patient
}

// Remove takes p out of the room. Returns false if p was not waiting.
func (wr *WaitingRoom) Remove(p *Patient) bool {
	e, ok := wr.byID[p]
	if !ok {
		return false
	}
	heap.Remove(&wr.entries, e.index)
	delete(wr.byID, p)
	return true
}

// Contains reports whether p is in the room.
func (wr *WaitingRoom) Contains(p *Patient) bool {
	_, ok := wr.byID[p]
	return ok
}

// Len returns the number of waiting patients.
func (wr *WaitingRoom) Len() int {
	return len(wr.entries)
}

// Patients returns the waiting patients in the order they would be called.
// The room itself is not modified.
func (wr *WaitingRoom) Patients() []*Patient {
	sorted := make(waitingHeap, len(wr.entries))
	copy(sorted, wr.entries)
	// sort.Slice swaps slice elements directly, leaving entry indexes intact
	sort.Slice(sorted, func(i, j int) bool { return sorted.Less(i, j) })
	out := make([]*Patient, len(sorted))
	for i, e := range sorted {
		out[i] = e.patient
	}
	return out
}

func (wr *WaitingRoom) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range wr.Patients() {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s:%s", p.ID, p.Status)
	}
	sb.WriteString("]")
	return sb.String()
}
