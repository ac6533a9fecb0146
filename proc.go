package schedsim

import (
	"fmt"

	"github.com/markphelps/optional"
)

// ------------------------------------------------------------------------------------------------
// PROCESS DESCRIPTOR
// ------------------------------------------------------------------------------------------------

// Process is the external view of a process: the caller-supplied inputs plus
// the timing metrics the simulation fills in. Burst is never modified; the
// remaining-time bookkeeping lives in the table's internal state.
//
// Priority is numeric urgency, smaller = more urgent, and must be >= 1. Under
// MLQ the same field is reinterpreted as the fixed queue assignment (1..3).
type Process struct {
	Pid      Tpid  `json:"pid"`
	Arrival  Ttime `json:"arrival"`
	Burst    Ttime `json:"burst"`
	Priority int   `json:"priority"`

	Completion Ttime        `json:"completion"`
	Turnaround Ttime        `json:"turnaround"`
	Waiting    Ttime        `json:"waiting"`
	FirstRun   optional.Int `json:"first_run"`
}

func (p Process) String() string {
	return fmt.Sprintf("%v: arrival %v, burst %v, prio %d", p.Pid, p.Arrival, p.Burst, p.Priority)
}

// ------------------------------------------------------------------------------------------------
// PER-PROCESS SIMULATION STATE
// ------------------------------------------------------------------------------------------------

// procState is the internal view of one process for the duration of a run.
type procState struct {
	rem      Ttime // remaining burst; the process is complete at 0
	basePrio int   // snapshot of the input priority
	currPrio int   // basePrio lowered by aging, clamped at 1

	queue       int          // current queue (MLFQ/MLQ only), 1..3
	quantumUsed Ttime        // execution consumed against the current MLFQ level quantum
	lastQ3Entry optional.Int // last time this process entered Q3 (MLFQ promotion clock)

	admitted bool // already handed to the policy's ready structure
}

// procTable owns all mutable simulation state. The descriptor slice is
// borrowed from the caller so the metrics land in place.
type procTable struct {
	procs []Process
	state []procState
	done  int
}

func newProcTable(procs []Process, policy Policy) *procTable {
	pt := &procTable{
		procs: procs,
		state: make([]procState, len(procs)),
	}
	for i := range procs {
		initialQueue := 1
		if policy == MLQ {
			initialQueue = procs[i].Priority
		}
		pt.state[i] = procState{
			rem:      procs[i].Burst,
			basePrio: procs[i].Priority,
			currPrio: procs[i].Priority,
			queue:    initialQueue,
		}
		// reset outputs so a rerun over the same slice is identical
		pt.procs[i].Completion = 0
		pt.procs[i].Turnaround = 0
		pt.procs[i].Waiting = 0
		pt.procs[i].FirstRun = optional.Int{}
	}
	return pt
}

func (pt *procTable) n() int {
	return len(pt.procs)
}

func (pt *procTable) isDone(i int) bool {
	return pt.state[i].rem == 0
}

func (pt *procTable) allDone() bool {
	return pt.done == len(pt.procs)
}

func (pt *procTable) availableAt(i int, t Ttime) bool {
	return pt.state[i].rem > 0 && pt.procs[i].Arrival <= t
}

// consume runs process i for d ticks starting at t. On completion it fills
// the timing metrics into the descriptor. Reports whether i is now done.
func (pt *procTable) consume(i int, d, t Ttime) bool {
	if d > pt.state[i].rem {
		panic(fmt.Sprintf("consume %v for %v with only %v left", pt.procs[i].Pid, d, pt.state[i].rem))
	}
	pt.state[i].rem -= d
	if pt.state[i].rem > 0 {
		return false
	}
	p := &pt.procs[i]
	p.Completion = t + d
	p.Turnaround = p.Completion - p.Arrival
	p.Waiting = p.Turnaround - p.Burst
	pt.done++
	return true
}

// recordFirstRun notes the first time i ever executed. No-op once set.
func (pt *procTable) recordFirstRun(i int, t Ttime) {
	if !pt.procs[i].FirstRun.Present() {
		pt.procs[i].FirstRun.Set(int(t))
	}
}

// age recomputes current priorities from wall-clock wait time. Only
// processes that have never run age; once a process has executed, its
// priority freezes at whatever value it held.
func (pt *procTable) age(t Ttime) {
	for i := range pt.state {
		st := &pt.state[i]
		if st.rem == 0 || pt.procs[i].Arrival > t || pt.procs[i].FirstRun.Present() {
			continue
		}
		aged := st.basePrio - int(t-pt.procs[i].Arrival)/AGING_RATE
		if aged < 1 {
			aged = 1
		}
		st.currPrio = aged
	}
}
