package schedsim

import (
	"fmt"
	"io"
	"sort"
)

// Sim is one simulation run: a single logical CPU driven from time 0 until
// every process has completed. A Sim is single-use and single-threaded; two
// concurrent simulations need two Sims.
type Sim struct {
	table   *procTable
	log     *ganttLog
	policy  Policy
	quantum Ttime
	maxLogs int

	rrQ  *fifo
	mlfq *mlfqState
	mlq  *mlqState

	trace     io.Writer
	truncated bool
}

// NewSim validates the inputs and prepares a run. The descriptor slice is
// retained: the timing metrics are written back into it.
func NewSim(procs []Process, policy Policy, quantum int, maxLogs int) (*Sim, error) {
	if !policy.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlgorithm, int(policy))
	}
	if policy == RR && quantum <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantum, quantum)
	}
	seen := make(map[Tpid]bool, len(procs))
	for _, p := range procs {
		if p.Burst <= 0 || p.Arrival < 0 || p.Priority < 1 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProcess, p)
		}
		if policy == MLQ && (p.Priority < 1 || p.Priority > 3) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMLQQueue, p)
		}
		if seen[p.Pid] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicatePid, p.Pid)
		}
		seen[p.Pid] = true
	}

	s := &Sim{
		table:   newProcTable(procs, policy),
		log:     newGanttLog(),
		policy:  policy,
		quantum: Ttime(quantum),
		maxLogs: maxLogs,
	}
	switch policy {
	case RR:
		s.rrQ = newFifo()
	case MLFQ:
		s.mlfq = newMlfqState()
	case MLQ:
		s.mlq = newMlqState()
	}
	return s, nil
}

// SetTrace installs a writer for per-step trace records. Off by default; the
// core itself never opens files.
func (s *Sim) SetTrace(w io.Writer) {
	s.trace = w
}

// Truncated reports whether Run dropped segments past the maxLogs cap.
func (s *Sim) Truncated() bool {
	return s.truncated
}

// Run drives the simulation to completion and returns the gantt log,
// truncated to at most maxLogs segments. The per-process metrics are filled
// into the slice given to NewSim.
func (s *Sim) Run() []Segment {
	t := Ttime(0)
	for !s.table.allDone() {
		s.admitArrivals(t)
		if s.policy == MLFQ {
			s.mlfq.promote(s.table, t)
		}
		if s.policy == PrioNP || s.policy == PrioP {
			s.table.age(t)
		}

		winner, ok := s.selectNext(t)
		if !ok {
			s.traceStep("%v idle\n", t)
			s.log.append(IDLE_PID, t, t+1)
			t++
			continue
		}

		run := s.planRun(winner, t)
		if run <= 0 {
			s.unselect(winner)
			t++
			continue
		}

		s.table.recordFirstRun(winner, t)
		remBefore := s.table.state[winner].rem
		done := s.table.consume(winner, run, t)
		s.log.append(s.table.procs[winner].Pid, t, t+run)
		s.traceStep("%v run %v for %v (rem %v)\n", t, s.table.procs[winner].Pid, run, s.table.state[winner].rem)
		t += run

		// arrivals during the segment enter the ready structures before the
		// preempted process re-files behind them
		s.admitArrivals(t)
		if !done {
			s.requeue(winner, run, remBefore, t)
		}
	}

	logs, truncated := s.log.truncateTo(s.maxLogs)
	s.truncated = truncated
	return logs
}

// admitArrivals hands every newly arrived process to the policy's ready
// structure, in (arrival, pid) order so ties admit deterministically. The
// scan-based disciplines compute their candidate sets on demand and need no
// admission step.
func (s *Sim) admitArrivals(t Ttime) {
	if s.policy != RR && s.policy != MLFQ && s.policy != MLQ {
		return
	}
	arrived := make([]int, 0)
	for i := range s.table.procs {
		if !s.table.state[i].admitted && s.table.procs[i].Arrival <= t {
			arrived = append(arrived, i)
		}
	}
	sort.Slice(arrived, func(a, b int) bool {
		pa, pb := s.table.procs[arrived[a]], s.table.procs[arrived[b]]
		if pa.Arrival != pb.Arrival {
			return pa.Arrival < pb.Arrival
		}
		return pa.Pid < pb.Pid
	})
	for _, i := range arrived {
		s.table.state[i].admitted = true
		switch s.policy {
		case RR:
			s.rrQ.enq(i)
		case MLFQ:
			s.mlfq.admit(s.table, i)
		case MLQ:
			s.mlq.admit(s.table, i)
		}
	}
}

// requeue re-files an incomplete process after its segment, per policy.
func (s *Sim) requeue(i int, ran, remBefore, t Ttime) {
	switch s.policy {
	case RR:
		s.rrQ.enq(i)
	case MLFQ:
		s.mlfq.requeue(s.table, i, ran, t)
	case MLQ:
		s.mlq.requeue(s.table, i, ran, remBefore)
	}
}

// Simulate is the one-call surface: validate, run, and return the log. The
// caller detects a truncated log by len(logs) == maxLogs.
func Simulate(procs []Process, policy Policy, quantum, maxLogs int) ([]Segment, error) {
	s, err := NewSim(procs, policy, quantum, maxLogs)
	if err != nil {
		return nil, err
	}
	return s.Run(), nil
}
