package schedsim

import "gonum.org/v1/gonum/stat"

// Summary aggregates the per-process metrics of one completed run. It is
// derived entirely from the populated descriptors (busy time is the sum of
// the bursts), so it can be recomputed at will.
type Summary struct {
	Processes     int     `json:"processes"`
	Makespan      Ttime   `json:"makespan"`
	BusyTime      Ttime   `json:"busy_time"`
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgWaiting    float64 `json:"avg_waiting"`
	AvgResponse   float64 `json:"avg_response"`
	Utilization   float64 `json:"cpu_utilization"`
	Throughput    float64 `json:"throughput"`
}

// Summarize computes the aggregate view of a finished simulation. procs must
// already carry completion metrics (i.e. Run has returned).
func Summarize(procs []Process) Summary {
	sum := Summary{Processes: len(procs)}
	if len(procs) == 0 {
		return sum
	}

	tats := make([]float64, len(procs))
	waits := make([]float64, len(procs))
	responses := make([]Ttime, len(procs))
	for i, p := range procs {
		tats[i] = float64(p.Turnaround)
		waits[i] = float64(p.Waiting)
		responses[i] = Ttime(p.FirstRun.OrElse(int(p.Arrival))) - p.Arrival
		sum.Makespan = maxOf(sum.Makespan, p.Completion)
		sum.BusyTime += p.Burst
	}

	sum.AvgTurnaround = stat.Mean(tats, nil)
	sum.AvgWaiting = stat.Mean(waits, nil)
	sum.AvgResponse = avg(responses)
	if sum.Makespan > 0 {
		sum.Utilization = float64(sum.BusyTime) / float64(sum.Makespan)
		sum.Throughput = float64(len(procs)) / float64(sum.Makespan)
	}
	return sum
}
