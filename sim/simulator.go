// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventRecord describes one dispatched event, as seen by an Observer.
type EventRecord struct {
	Event    Event
	Before   Status // patient status before the handler ran
	After    Status // patient status after the handler ran
	Stale    bool   // the handler discarded the event
	Occupied int    // occupied rooms after the handler ran
	Waiting  int    // waiting-room population after the handler ran
}

// Observer is called once per dispatched event. It must not mutate the patient.
type Observer func(EventRecord)

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeverityPolicy replaces the default uniform severity policy.
func WithSeverityPolicy(p SeverityPolicy) Option {
	return func(s *Simulator) { s.policy = p }
}

// WithObserver registers an observer invoked once per dispatched event.
func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observer = o }
}

// Snapshot is a point-in-time view of the department.
type Snapshot struct {
	Clock     int64
	Rooms     int
	Occupied  int
	Waiting   int
	InTriage  int
	Added     int
	Treated   int
	Dead      int
	Abandoned int
}

// InSystem returns the number of patients not yet in a terminal status.
func (s Snapshot) InSystem() int {
	return s.InTriage + s.Waiting + s.Occupied
}

// Simulator owns the whole world state of one emergency department run:
// the event queue, the waiting room, room occupancy and the outcome counters.
// It is not safe for concurrent use; run independent Simulators instead.
type Simulator struct {
	cfg   Config
	clock int64

	events   *EventQueue
	waiting  *WaitingRoom
	occupied int
	inTriage int

	// patients triaged at assignAt, waiting for the end-of-instant room assignment
	pending       []*Patient
	assignPending bool
	assignAt      int64

	known map[*Patient]struct{}
	ids   map[string]struct{}

	policy   SeverityPolicy
	observer Observer
	metrics  *Metrics
	err      error
}

// NewSimulator validates cfg and returns an empty simulator.
func NewSimulator(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		cfg:     cfg,
		events:  NewEventQueue(),
		waiting: NewWaitingRoom(),
		known:   make(map[*Patient]struct{}),
		ids:     make(map[string]struct{}),
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == nil {
		rng := NewPartitionedRNG(NewSimulationKey(DefaultSeed))
		s.policy = NewUniformSeverity(rng.ForSubsystem(SubsystemTriage))
	}
	return s, nil
}

// AddPatient puts p in the NEW status and schedules its triage to complete
// at arrival + Config.Triage. A patient may be added only once.
func (sim *Simulator) AddPatient(p *Patient, arrival int64) error {
	if p == nil {
		return fmt.Errorf("%w: nil patient", ErrInvalidPatient)
	}
	if arrival < 0 {
		return fmt.Errorf("%w: patient %s has negative arrival time %d", ErrInvalidPatient, p.ID, arrival)
	}
	if arrival < sim.clock {
		return fmt.Errorf("%w: patient %s arrives at %d, before the clock (%d)", ErrInvalidPatient, p.ID, arrival, sim.clock)
	}
	if _, dup := sim.known[p]; dup {
		return fmt.Errorf("%w: patient %s already added", ErrInvalidPatient, p.ID)
	}
	if p.ID != "" {
		if _, dup := sim.ids[p.ID]; dup {
			return fmt.Errorf("%w: patient ID %s already in use", ErrInvalidPatient, p.ID)
		}
		sim.ids[p.ID] = struct{}{}
	}
	sim.known[p] = struct{}{}

	p.Status = StatusNew
	p.ArrivalTime = arrival
	sim.inTriage++
	sim.metrics.Added++
	sim.Schedule(NewEvent(arrival+sim.cfg.Triage, EventTriage, p))
	return nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.events.Schedule(ev)
}

// Run dispatches events until the queue is empty. It stops at the first
// invariant violation and returns it as an *InvariantError.
func (sim *Simulator) Run() error {
	logrus.Debugf("[t %07d] Simulation started with %d rooms, %d events queued", sim.clock, sim.cfg.Rooms, sim.events.Len())
	for {
		more, err := sim.Step()
		if err != nil {
			logrus.Errorf("[t %07d] Simulation aborted: %v", sim.clock, err)
			return err
		}
		if !more {
			break
		}
	}
	logrus.Debugf("[t %07d] Simulation ended", sim.clock)
	return nil
}

// Step dispatches the next event. It returns false once the queue is drained.
// Room assignment for an instant runs when the first event past that instant
// (or a TIMEOUT at that instant) is reached.
func (sim *Simulator) Step() (bool, error) {
	if sim.err != nil {
		return false, sim.err
	}
	ev, ok := sim.events.Next()
	if sim.assignPending && (!ok || ev.time > sim.assignAt || ev.typ == EventTimeout) {
		if ok {
			sim.events.putBack(ev)
		}
		sim.assignRooms()
		ev, ok = sim.events.Next()
	}
	if !ok {
		return false, nil
	}
	if err := sim.dispatch(ev); err != nil {
		sim.err = err
		return false, err
	}
	return true, nil
}

// RunUntil dispatches every event with a timestamp <= t, completes the room
// assignment for the last instant, and advances the clock to t.
func (sim *Simulator) RunUntil(t int64) error {
	for {
		if sim.err != nil {
			return sim.err
		}
		ev, ok := sim.events.Next()
		if ok {
			sim.events.putBack(ev)
		}
		if !ok || ev.time > t {
			if sim.assignPending {
				sim.assignRooms()
				continue
			}
			break
		}
		if _, err := sim.Step(); err != nil {
			return err
		}
	}
	if t > sim.clock {
		sim.clock = t
	}
	return nil
}

func (sim *Simulator) dispatch(ev Event) error {
	p := ev.patient
	if p == nil {
		return &InvariantError{Event: ev, Reason: "event without patient"}
	}
	sim.clock = ev.time
	sim.metrics.Events++
	sim.metrics.SimEndedTime = ev.time
	before := p.Status
	logrus.Debugf("[t %07d] Executing %s", sim.clock, ev)

	var stale bool
	var err error
	switch ev.typ {
	case EventTriage:
		err = sim.processTriage(ev)
	case EventTimeout:
		stale, err = sim.processTimeout(ev)
	case EventFreeStudio:
		err = sim.processFreeStudio(ev)
	default:
		err = &InvariantError{Event: ev, Status: p.Status, Reason: "unknown event type"}
	}
	if err != nil {
		return err
	}
	if stale {
		sim.metrics.StaleEvents++
		logrus.Debugf("[t %07d] Discarded stale %s for %s (now %s)", sim.clock, ev.typ, p.ID, p.Status)
	}
	if sim.observer != nil {
		sim.observer(EventRecord{
			Event:    ev,
			Before:   before,
			After:    p.Status,
			Stale:    stale,
			Occupied: sim.occupied,
			Waiting:  sim.waiting.Len(),
		})
	}
	return nil
}

// Clock returns the timestamp of the last dispatched event.
func (sim *Simulator) Clock() int64 { return sim.clock }

// TreatedCount returns the number of patients discharged after treatment.
func (sim *Simulator) TreatedCount() int { return sim.metrics.Treated }

// DeadCount returns the number of patients who died waiting.
func (sim *Simulator) DeadCount() int { return sim.metrics.Dead }

// AbandonedCount returns the number of patients who left before treatment.
func (sim *Simulator) AbandonedCount() int { return sim.metrics.Abandoned }

// OccupiedRooms returns the number of rooms currently treating a patient.
func (sim *Simulator) OccupiedRooms() int { return sim.occupied }

// WaitingCount returns the waiting-room population.
func (sim *Simulator) WaitingCount() int { return sim.waiting.Len() }

// Waiting returns the waiting patients in call order.
func (sim *Simulator) Waiting() []*Patient { return sim.waiting.Patients() }

// Metrics returns the live metrics of this run.
func (sim *Simulator) Metrics() *Metrics { return sim.metrics }

// Snapshot returns the current department state.
func (sim *Simulator) Snapshot() Snapshot {
	return Snapshot{
		Clock:     sim.clock,
		Rooms:     sim.cfg.Rooms,
		Occupied:  sim.occupied,
		Waiting:   sim.waiting.Len(),
		InTriage:  sim.inTriage,
		Added:     sim.metrics.Added,
		Treated:   sim.metrics.Treated,
		Dead:      sim.metrics.Dead,
		Abandoned: sim.metrics.Abandoned,
	}
}
