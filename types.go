package schedsim

import (
	"fmt"
	"strings"
)

// Ttime is a point (or span) of simulated time. Time is logical: the
// simulation starts at 0 and only ever moves forward in integer steps.
type Ttime int

// Tpid identifies a process. Callers pick the values; they only need to be
// distinct. IDLE_PID is reserved for gaps in the gantt log.
type Tpid int

func (t Ttime) String() string {
	return fmt.Sprintf("%dt", int(t))
}

func (p Tpid) String() string {
	if p == IDLE_PID {
		return "idle"
	}
	return fmt.Sprintf("P%d", int(p))
}

const IDLE_PID Tpid = -1

const (
	AGING_RATE = 5 // a waiting process gains one priority level per this many ticks

	MLFQ_Q1_QUANTUM  = 8
	MLFQ_Q2_QUANTUM  = 16
	MLFQ_PROMOTE_AGE = 50 // ticks resident in Q3 before the anti-starvation promotion fires

	MLQ_RR_QUANTUM = 10 // fixed quantum of the MLQ middle queue
)

// Policy selects one of the scheduling disciplines. The numeric values are
// part of the external contract and must not be reordered.
type Policy int

const (
	FCFS Policy = iota
	SJF
	SRTF
	PrioNP
	PrioP
	RR
	MLFQ
	MLQ
)

var policyNames = map[Policy]string{
	FCFS:   "fcfs",
	SJF:    "sjf",
	SRTF:   "srtf",
	PrioNP: "priority",
	PrioP:  "priority-p",
	RR:     "rr",
	MLFQ:   "mlfq",
	MLQ:    "mlq",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

func (p Policy) valid() bool {
	return p >= FCFS && p <= MLQ
}

// Preemptive reports whether the discipline can take the CPU away from a
// process that still has work left.
func (p Policy) Preemptive() bool {
	switch p {
	case SRTF, PrioP, RR, MLFQ, MLQ:
		return true
	}
	return false
}

// ParsePolicy maps a policy name (as printed by String) to its Policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == strings.ToLower(s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, s)
}
