package schedsim

// Multi-level queue state. Queue membership is fixed at admission from the
// input priority field (1, 2 or 3); there is no migration. Q1 is
// priority-preemptive and always wins while non-empty, Q2 is round robin
// with a fixed quantum, Q3 is FCFS. A Q1 arrival truncates whatever Q2/Q3
// run is in flight; the victim re-enters its queue at the head so it resumes
// once Q1 drains.
//
// Q1 has no FIFO: its ordering is (priority, arrival, pid) over whatever is
// available, recomputed at every selection, and its runs advance one tick at
// a time so a better Q1 arrival takes over immediately.
type mlqState struct {
	q2 *fifo
	q3 *fifo
}

func newMlqState() *mlqState {
	return &mlqState{q2: newFifo(), q3: newFifo()}
}

func (m *mlqState) admit(pt *procTable, i int) {
	switch pt.state[i].queue {
	case 2:
		m.q2.enq(i)
	case 3:
		m.q3.enq(i)
	}
}

func (m *mlqState) selectNext(pt *procTable, t Ttime) (int, bool) {
	best := -1
	for i := range pt.procs {
		if pt.state[i].queue != 1 || !pt.availableAt(i, t) {
			continue
		}
		if best == -1 || pt.better(i, best, func(j int) int { return pt.state[j].basePrio }) {
			best = i
		}
	}
	if best != -1 {
		return best, true
	}
	if i := m.q2.deq(); i != -1 {
		return i, true
	}
	if i := m.q3.deq(); i != -1 {
		return i, true
	}
	return -1, false
}

func (m *mlqState) unselect(pt *procTable, i int) {
	switch pt.state[i].queue {
	case 2:
		m.q2.enqFront(i)
	case 3:
		m.q3.enqFront(i)
	}
}

// requeue re-files an incomplete process after a run of ran ticks. remBefore
// is its remaining time when the run started, to tell a truncated run from a
// quantum expiry.
func (m *mlqState) requeue(pt *procTable, i int, ran, remBefore Ttime) {
	switch pt.state[i].queue {
	case 1:
		// selection rescans Q1 membership; nothing to re-file
	case 2:
		if ran < minOf(remBefore, MLQ_RR_QUANTUM) {
			m.q2.enqFront(i) // cut short by a Q1 arrival
		} else {
			m.q2.enq(i) // quantum expiry
		}
	case 3:
		m.q3.enqFront(i) // only a Q1 arrival can interrupt FCFS
	}
}
