package schedsim

// Arrival queries over the process table. The table index order is stable,
// so every scan below is deterministic for a fixed input.

// candidates returns the indices of all processes that could run at t.
func (pt *procTable) candidates(t Ttime) []int {
	cands := make([]int, 0, len(pt.procs))
	for i := range pt.procs {
		if pt.availableAt(i, t) {
			cands = append(cands, i)
		}
	}
	return cands
}

// nextArrivalAfter returns the earliest arrival strictly after t among
// incomplete processes, or false if none remain.
func (pt *procTable) nextArrivalAfter(t Ttime) (Ttime, bool) {
	var next Ttime
	found := false
	for i := range pt.procs {
		at := pt.procs[i].Arrival
		if pt.state[i].rem > 0 && at > t && (!found || at < next) {
			next = at
			found = true
		}
	}
	return next, found
}

// nextArrivalWithin returns the earliest arrival in the open interval
// (t, end) whose process satisfies pred. The planner uses this to cut a
// segment at the instant of a preempting arrival.
func (pt *procTable) nextArrivalWithin(t, end Ttime, pred func(j int) bool) (Ttime, bool) {
	var next Ttime
	found := false
	for j := range pt.procs {
		at := pt.procs[j].Arrival
		if pt.state[j].rem > 0 && at > t && at < end && (!found || at < next) && pred(j) {
			next = at
			found = true
		}
	}
	return next, found
}
