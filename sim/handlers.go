package sim

import (
	"github.com/sirupsen/logrus"
)

// processTriage ends a patient's triage: a code is assigned and the patient
// joins the waiting room. Whether a room is free is decided by assignRooms
// once every triage and discharge of this instant has been seen.
func (sim *Simulator) processTriage(ev Event) error {
	p := ev.patient
	if p.Status != StatusNew {
		return &InvariantError{Event: ev, Status: p.Status, Reason: "triage completed for a patient that is not new"}
	}
	code := sim.policy.Assign(p, ev.time)
	if !code.IsWaiting() {
		return &InvariantError{Event: ev, Status: code, Reason: "severity policy returned a non-triage code"}
	}
	p.Status = code
	p.Severity = code
	p.QueueTime = ev.time
	sim.inTriage--
	sim.waiting.Push(p)
	sim.pending = append(sim.pending, p)
	sim.markAssignment(ev.time)
	logrus.Debugf("<< Triage: %s coded %s at %d", p.ID, code, ev.time)
	return nil
}

// processFreeStudio discharges a treated patient and frees the room.
func (sim *Simulator) processFreeStudio(ev Event) error {
	p := ev.patient
	if p.Status != StatusTreating {
		return &InvariantError{Event: ev, Status: p.Status, Reason: "room freed by a patient that is not in treatment"}
	}
	if sim.occupied <= 0 {
		return &InvariantError{Event: ev, Status: p.Status, Reason: "room freed while no room is occupied"}
	}
	p.Status = StatusOut
	sim.occupied--
	sim.metrics.Treated++
	sim.metrics.TreatedByCode[p.Severity]++
	sim.markAssignment(ev.time)
	logrus.Debugf("<< Discharge: %s treated, %d/%d rooms occupied", p.ID, sim.occupied, sim.cfg.Rooms)
	return nil
}

// processTimeout applies a waiting-room timeout. The event is stale (and
// ignored) when the patient is no longer waiting under the code the timeout
// was scheduled for.
func (sim *Simulator) processTimeout(ev Event) (stale bool, err error) {
	p := ev.patient
	switch p.Status {
	case StatusTreating, StatusOut, StatusBlack:
		return true, nil
	case StatusWhite, StatusYellow, StatusRed:
		if p.Status != ev.assumed {
			// superseded by an escalation; the newer timeout is still queued
			return true, nil
		}
		if !sim.waiting.Remove(p) {
			return false, &InvariantError{Event: ev, Status: p.Status, Reason: "waiting code held by a patient outside the waiting room"}
		}
	default:
		return false, &InvariantError{Event: ev, Status: p.Status, Reason: "timeout for a patient in an unexpected status"}
	}

	switch p.Status {
	case StatusWhite:
		p.Status = StatusOut
		sim.metrics.Abandoned++
		logrus.Debugf("<< Timeout: %s abandoned after waiting since %d", p.ID, p.QueueTime)
	case StatusYellow:
		p.Status = StatusRed
		p.Severity = StatusRed
		p.Escalated = true
		sim.waiting.Push(p)
		sim.metrics.Escalations++
		sim.scheduleTimeout(p, ev.time)
		logrus.Debugf("<< Timeout: %s escalated to red", p.ID)
	case StatusRed:
		p.Status = StatusBlack
		sim.metrics.Dead++
		logrus.Debugf("<< Timeout: %s died waiting", p.ID)
	}
	return false, nil
}

// markAssignment records that free rooms must be (re)assigned at t.
func (sim *Simulator) markAssignment(t int64) {
	sim.assignPending = true
	sim.assignAt = t
}

// assignRooms fills free rooms from the waiting room in priority order, then
// starts the waiting-room timeout of every patient triaged at this instant
// who did not get a room.
func (sim *Simulator) assignRooms() {
	now := sim.assignAt
	for sim.occupied < sim.cfg.Rooms && sim.waiting.Len() > 0 {
		sim.startTreatment(sim.waiting.Pop(), now)
	}
	for _, p := range sim.pending {
		if p.Status.IsWaiting() {
			sim.scheduleTimeout(p, now)
		}
	}
	sim.pending = sim.pending[:0]
	sim.assignPending = false
	sim.metrics.observeWaiting(sim.waiting.Len())
}

func (sim *Simulator) startTreatment(p *Patient, now int64) {
	code := p.Status
	dur, _ := sim.cfg.Treatment.For(code)
	sim.metrics.recordAdmission(code, now-p.QueueTime)
	p.Status = StatusTreating
	p.TreatmentStart = now
	sim.occupied++
	sim.Schedule(NewEvent(now+dur, EventFreeStudio, p))
	logrus.Debugf("<< Treatment: %s (%s) starts at %d, room free at %d", p.ID, code, now, now+dur)
}

func (sim *Simulator) scheduleTimeout(p *Patient, now int64) {
	dur, _ := sim.cfg.Timeout.For(p.Status)
	sim.Schedule(NewEvent(now+dur, EventTimeout, p))
}
