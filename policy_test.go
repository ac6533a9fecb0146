package schedsim

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyFixture = []Process{
	{Pid: 1, Arrival: 0, Burst: 6, Priority: 2},
	{Pid: 2, Arrival: 3, Burst: 2, Priority: 1},
	{Pid: 3, Arrival: 4, Burst: 7, Priority: 3},
	{Pid: 4, Arrival: 10, Burst: 1, Priority: 2},
	{Pid: 5, Arrival: 25, Burst: 4, Priority: 1},
}

func fixture() []Process {
	return append([]Process{}, propertyFixture...)
}

func nonIdle(logs []Segment) []Segment {
	out := make([]Segment, 0, len(logs))
	for _, s := range logs {
		if !s.Idle() {
			out = append(out, s)
		}
	}
	return out
}

func TestFCFSRunsInArrivalOrder(t *testing.T) {
	procs := fixture()
	logs := mustRun(t, procs, FCFS, 0)

	var firstAppearance []Tpid
	seen := map[Tpid]bool{}
	for _, s := range nonIdle(logs) {
		if !seen[s.Pid] {
			seen[s.Pid] = true
			firstAppearance = append(firstAppearance, s.Pid)
		}
	}

	expected := fixture()
	sort.Slice(expected, func(a, b int) bool {
		if expected[a].Arrival != expected[b].Arrival {
			return expected[a].Arrival < expected[b].Arrival
		}
		return expected[a].Pid < expected[b].Pid
	})
	for i, p := range expected {
		assert.Equal(t, p.Pid, firstAppearance[i])
	}
}

func TestNonPreemptivePoliciesRunEachProcessOnce(t *testing.T) {
	for _, policy := range []Policy{FCFS, SJF, PrioNP} {
		procs := fixture()
		logs := mustRun(t, procs, policy, 0)

		perPid := map[Tpid]int{}
		for _, s := range nonIdle(logs) {
			perPid[s.Pid]++
		}
		for _, p := range procs {
			assert.Equal(t, 1, perPid[p.Pid], "%v: %v should have exactly one segment", policy, p.Pid)
		}
	}
}

func TestSRTFRunsShortestRemainingAtEveryBoundary(t *testing.T) {
	procs := fixture()
	logs := mustRun(t, procs, SRTF, 0)

	remAt := func(p Process, t Ttime) Ttime {
		return p.Burst - execBefore(logs, p.Pid, t)
	}
	for _, s := range nonIdle(logs) {
		var owner Process
		for _, p := range procs {
			if p.Pid == s.Pid {
				owner = p
			}
		}
		for _, p := range procs {
			if p.Pid == s.Pid || !readyAt(procs, logs, p.Pid, s.Start) {
				continue
			}
			assert.LessOrEqual(t, remAt(owner, s.Start), remAt(p, s.Start),
				"at %v, %v ran with more remaining than ready %v", s.Start, s.Pid, p.Pid)
		}
	}
}

func TestRRNeverExceedsQuantumWhileOthersWait(t *testing.T) {
	const quantum = 3
	procs := fixture()
	logs := mustRun(t, procs, RR, quantum)

	for _, s := range nonIdle(logs) {
		for boundary := s.Start + quantum; boundary < s.Finish; boundary += quantum {
			for _, p := range procs {
				if p.Pid == s.Pid {
					continue
				}
				assert.False(t, readyAt(procs, logs, p.Pid, boundary),
					"%v kept the CPU past its quantum at %v while %v was ready", s.Pid, boundary, p.Pid)
			}
		}
	}
}

func TestAgingLowersPriorityAndClampsAtOne(t *testing.T) {
	procs := []Process{
		{Pid: 1, Arrival: 0, Burst: 5, Priority: 7},
		{Pid: 2, Arrival: 2, Burst: 5, Priority: 9},
	}
	pt := newProcTable(procs, PrioP)

	pt.age(10)
	assert.Equal(t, 5, pt.state[0].currPrio) // waited 10, gained 2 levels
	assert.Equal(t, 8, pt.state[1].currPrio) // waited 8, gained 1 level

	pt.age(100)
	assert.Equal(t, 1, pt.state[0].currPrio, "aged priority must clamp at 1")
	assert.Equal(t, 1, pt.state[1].currPrio)
}

func TestAgingFreezesAfterFirstRun(t *testing.T) {
	procs := []Process{{Pid: 1, Arrival: 0, Burst: 5, Priority: 7}}
	pt := newProcTable(procs, PrioP)

	pt.age(5)
	require.Equal(t, 6, pt.state[0].currPrio)

	pt.recordFirstRun(0, 5)
	pt.age(50)
	assert.Equal(t, 6, pt.state[0].currPrio, "priority must freeze once the process has run")
}

func TestSelectionTieBreaksByArrivalThenPid(t *testing.T) {
	procs := []Process{
		{Pid: 9, Arrival: 0, Burst: 4, Priority: 2},
		{Pid: 3, Arrival: 0, Burst: 4, Priority: 2},
		{Pid: 5, Arrival: 1, Burst: 4, Priority: 2},
	}
	logs := mustRun(t, procs, SJF, 0)

	// equal burst and priority everywhere: arrival first, then pid
	assert.Equal(t, []Segment{seg(3, 0, 4), seg(9, 4, 8), seg(5, 8, 12)}, logs)
}
