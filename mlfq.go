package schedsim

import "github.com/markphelps/optional"

// Multi-level feedback queue state. Three FIFO levels with strict priority
// Q1 > Q2 > Q3. New arrivals always enter Q1; a process that exhausts its
// level quantum is demoted one level; a process stuck in Q3 long enough is
// promoted back to Q2 so it cannot starve.
//
// The level quantum is an allowance: a run cut short by an arrival re-enters
// the same level at the tail and keeps the part it already consumed, so
// demotion fires once the cumulative consumption at the level reaches the
// level's quantum.
type mlfqState struct {
	qs [3]*fifo
}

func newMlfqState() *mlfqState {
	return &mlfqState{qs: [3]*fifo{newFifo(), newFifo(), newFifo()}}
}

func (m *mlfqState) admit(pt *procTable, i int) {
	pt.state[i].queue = 1
	pt.state[i].quantumUsed = 0
	m.qs[0].enq(i)
}

// promote moves every Q3 resident that has waited at least
// MLFQ_PROMOTE_AGE ticks since entering Q3 up to the tail of Q2.
func (m *mlfqState) promote(pt *procTable, t Ttime) {
	for _, i := range append([]int{}, m.qs[2].getQ()...) {
		entered, err := pt.state[i].lastQ3Entry.Get()
		if err != nil {
			continue
		}
		if t-Ttime(entered) < MLFQ_PROMOTE_AGE {
			continue
		}
		m.qs[2].remove(i)
		pt.state[i].queue = 2
		pt.state[i].quantumUsed = 0
		pt.state[i].lastQ3Entry = optional.Int{}
		m.qs[1].enq(i)
	}
}

// selectNext pops the head of the highest non-empty level.
func (m *mlfqState) selectNext() (int, bool) {
	for _, q := range m.qs {
		if i := q.deq(); i != -1 {
			return i, true
		}
	}
	return -1, false
}

// allowance is how much of the level quantum process i may still consume.
func (m *mlfqState) allowance(pt *procTable, i int) Ttime {
	switch pt.state[i].queue {
	case 1:
		return MLFQ_Q1_QUANTUM - pt.state[i].quantumUsed
	case 2:
		return MLFQ_Q2_QUANTUM - pt.state[i].quantumUsed
	default:
		return pt.state[i].rem
	}
}

// requeue re-files an incomplete process after it ran for ran ticks ending
// at t: demote on quantum expiry, otherwise back to the tail of its level.
func (m *mlfqState) requeue(pt *procTable, i int, ran, t Ttime) {
	st := &pt.state[i]
	st.quantumUsed += ran

	expired := (st.queue == 1 && st.quantumUsed >= MLFQ_Q1_QUANTUM) ||
		(st.queue == 2 && st.quantumUsed >= MLFQ_Q2_QUANTUM)
	if expired {
		st.queue++
		st.quantumUsed = 0
		if st.queue == 3 {
			st.lastQ3Entry.Set(int(t))
		}
	}
	m.qs[st.queue-1].enq(i)
}
