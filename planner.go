package schedsim

// planRun computes the length of the next contiguous run for process i at
// time t, without re-entering the selector: the segment is bounded by
// natural completion, quantum expiry, and the next preempting arrival.
// Advancing in these variable-length steps (instead of tick by tick) is what
// keeps the log compact and the loop event-driven.
func (s *Sim) planRun(i int, t Ttime) Ttime {
	pt := s.table
	rem := pt.state[i].rem

	switch s.policy {
	case FCFS, SJF, PrioNP:
		// non-preemptive: run to completion
		return rem

	case SRTF:
		run := rem
		if at, ok := pt.nextArrivalWithin(t, t+run, func(j int) bool {
			return pt.state[j].rem < rem
		}); ok {
			run = at - t
		}
		return run

	case PrioP:
		// A candidate that already outranks i can only appear here after an
		// intermediate event re-entered this check; fall back to a single
		// tick so selection sees it immediately.
		prio := pt.state[i].currPrio
		for _, j := range pt.candidates(t) {
			if j != i && pt.state[j].currPrio < prio {
				return 1
			}
		}
		run := rem
		if at, ok := pt.nextArrivalWithin(t, t+run, func(j int) bool {
			return pt.state[j].currPrio < prio
		}); ok {
			run = at - t
		}
		return run

	case RR:
		// Arrivals inside the quantum are admitted ahead of the preempted
		// process when the segment ends; the quantum itself is never cut.
		return minOf(rem, s.quantum)

	case MLFQ:
		// Remaining allowance at the current level; Q3 runs to completion.
		// Any arrival lands in Q1 and preempts, so the segment is cut at the
		// next arrival no matter which level is running.
		run := minOf(rem, s.mlfq.allowance(pt, i))
		if at, ok := pt.nextArrivalWithin(t, t+run, func(j int) bool { return true }); ok {
			run = at - t
		}
		return run

	case MLQ:
		switch pt.state[i].queue {
		case 1:
			// priority-preemptive: advance one tick and re-select
			return 1
		case 2:
			run := minOf(rem, MLQ_RR_QUANTUM)
			if at, ok := pt.nextArrivalWithin(t, t+run, func(j int) bool {
				return pt.state[j].queue == 1
			}); ok {
				run = at - t
			}
			return run
		default:
			run := rem
			if at, ok := pt.nextArrivalWithin(t, t+run, func(j int) bool {
				return pt.state[j].queue == 1
			}); ok {
				run = at - t
			}
			return run
		}
	}
	return 0
}
