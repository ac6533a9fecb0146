package schedsim

// Selection of the next runner. Every discipline resolves ties the same way:
// after its primary key, smaller arrival wins, then smaller pid. Inputs with
// duplicate pids are rejected up front, so selection is total and
// deterministic.

// better reports whether candidate i beats candidate best under (key, at, pid).
func (pt *procTable) better(i, best int, key func(int) int) bool {
	ki, kb := key(i), key(best)
	if ki != kb {
		return ki < kb
	}
	if pt.procs[i].Arrival != pt.procs[best].Arrival {
		return pt.procs[i].Arrival < pt.procs[best].Arrival
	}
	return pt.procs[i].Pid < pt.procs[best].Pid
}

// pickMin scans the candidates at t and returns the index minimizing
// (key, at, pid), or false when nothing is runnable.
func (pt *procTable) pickMin(t Ttime, key func(int) int) (int, bool) {
	best := -1
	for i := range pt.procs {
		if !pt.availableAt(i, t) {
			continue
		}
		if best == -1 || pt.better(i, best, key) {
			best = i
		}
	}
	return best, best != -1
}

// selectNext picks the process to run at t, or false if the CPU should idle.
// Queue-backed disciplines (RR, MLFQ, MLQ) pop their winner off the ready
// structure; it is pushed back by requeue or unselect.
func (s *Sim) selectNext(t Ttime) (int, bool) {
	pt := s.table
	switch s.policy {
	case FCFS:
		return pt.pickMin(t, func(i int) int { return int(pt.procs[i].Arrival) })
	case SJF, SRTF:
		return pt.pickMin(t, func(i int) int { return int(pt.state[i].rem) })
	case PrioNP, PrioP:
		return pt.pickMin(t, func(i int) int { return pt.state[i].currPrio })
	case RR:
		if i := s.rrQ.deq(); i != -1 {
			return i, true
		}
		return -1, false
	case MLFQ:
		return s.mlfq.selectNext()
	case MLQ:
		return s.mlq.selectNext(pt, t)
	}
	return -1, false
}

// unselect undoes a pop when the planner produced no runnable segment; the
// candidate stays at the head of its queue.
func (s *Sim) unselect(i int) {
	switch s.policy {
	case RR:
		s.rrQ.enqFront(i)
	case MLFQ:
		s.mlfq.qs[s.table.state[i].queue-1].enqFront(i)
	case MLQ:
		s.mlq.unselect(s.table, i)
	}
}
