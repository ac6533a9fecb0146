package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	schedsim "github.com/KAMRANkami313/Hybrid-OS-Scheduler-Pro"
)

var ErrInvalidArgs = errors.New("invalid args")

func main() {
	var (
		file     = flag.String("file", "", "CSV process file: pid, burst, arrival[, priority]")
		config   = flag.String("config", "", "JSON scenario file (algorithm, quantum, processes)")
		algo     = flag.String("algo", "fcfs", "scheduling policy: fcfs, sjf, srtf, priority, priority-p, rr, mlfq, mlq")
		quantum  = flag.Int("quantum", 2, "round robin quantum")
		maxLogs  = flag.Int("max-logs", 10000, "upper bound on emitted gantt segments")
		traceOut = flag.String("trace", "", "write a per-step trace to this file")
	)
	flag.Parse()

	procs, policy, q, err := loadInputs(*file, *config, *algo, *quantum)
	if err != nil {
		log.WithError(err).Fatal("could not load inputs")
	}

	sim, err := schedsim.NewSim(procs, policy, q, *maxLogs)
	if err != nil {
		log.WithError(err).Fatal("rejected inputs")
	}
	if *traceOut != "" {
		f, err := os.Create(*traceOut)
		if err != nil {
			log.WithError(err).Fatal("could not open trace file")
		}
		defer f.Close()
		sim.SetTrace(f)
	}

	logs := sim.Run()
	if sim.Truncated() {
		log.WithField("max_logs", *maxLogs).Warn("gantt log truncated; rerun with a larger -max-logs")
	}

	summary := schedsim.Summarize(procs)
	log.WithFields(log.Fields{
		"policy":     policy.String(),
		"preemptive": policy.Preemptive(),
		"processes":  summary.Processes,
		"makespan":   int(summary.Makespan),
		"segments":   len(logs),
	}).Info("simulation complete")

	outputTitle(os.Stdout, fmt.Sprintf("%s schedule", strings.ToUpper(policy.String())))
	outputGantt(os.Stdout, logs)
	outputSchedule(os.Stdout, procs, summary)
}

func loadInputs(file, config, algo string, quantum int) ([]schedsim.Process, schedsim.Policy, int, error) {
	if config != "" {
		sc, err := loadScenario(config)
		if err != nil {
			return nil, 0, 0, err
		}
		policy, err := schedsim.ParsePolicy(sc.Algorithm)
		if err != nil {
			return nil, 0, 0, err
		}
		return sc.Processes, policy, sc.Quantum, nil
	}
	if file == "" {
		return nil, 0, 0, fmt.Errorf("%w: one of -file or -config is required", ErrInvalidArgs)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%v: error opening process file", err)
	}
	defer f.Close()
	procs, err := loadProcesses(f)
	if err != nil {
		return nil, 0, 0, err
	}
	policy, err := schedsim.ParsePolicy(algo)
	if err != nil {
		return nil, 0, 0, err
	}
	return procs, policy, quantum, nil
}

// scenario is a self-contained run description, handy for replaying a case.
type scenario struct {
	Algorithm string             `json:"algorithm"`
	Quantum   int                `json:"quantum"`
	Processes []schedsim.Process `json:"processes"`
}

func loadScenario(path string) (*scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%v: error opening scenario file", err)
	}
	defer f.Close()

	sc := &scenario{}
	if err := json.NewDecoder(f).Decode(sc); err != nil {
		return nil, fmt.Errorf("%v: error decoding scenario file", err)
	}
	return sc, nil
}

func loadProcesses(r io.Reader) ([]schedsim.Process, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	processes := make([]schedsim.Process, len(rows))
	for i := range rows {
		if len(rows[i]) < 3 {
			return nil, fmt.Errorf("%w: row %d needs pid, burst, arrival", ErrInvalidArgs, i+1)
		}
		pid, err := strToInt(rows[i][0])
		if err != nil {
			return nil, err
		}
		burst, err := strToInt(rows[i][1])
		if err != nil {
			return nil, err
		}
		arrival, err := strToInt(rows[i][2])
		if err != nil {
			return nil, err
		}
		priority := 1
		if len(rows[i]) >= 4 {
			priority, err = strToInt(rows[i][3])
			if err != nil {
				return nil, err
			}
		}
		processes[i] = schedsim.Process{
			Pid:      schedsim.Tpid(pid),
			Burst:    schedsim.Ttime(burst),
			Arrival:  schedsim.Ttime(arrival),
			Priority: priority,
		}
	}

	return processes, nil
}

func strToInt(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidArgs, s)
	}
	return i, nil
}

func outputTitle(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func outputGantt(w io.Writer, logs []schedsim.Segment) {
	fmt.Fprintln(w, "Gantt schedule")
	fmt.Fprint(w, "|")
	for _, seg := range logs {
		label := seg.Pid.String()
		padding := strings.Repeat(" ", (8-len(label))/2)
		fmt.Fprint(w, padding, label, padding, "|")
	}
	fmt.Fprintln(w)
	for i, seg := range logs {
		fmt.Fprint(w, int(seg.Start), "\t")
		if i == len(logs)-1 {
			fmt.Fprint(w, int(seg.Finish))
		}
	}
	fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, procs []schedsim.Process, summary schedsim.Summary) {
	rows := make([][]string, len(procs))
	for i, p := range procs {
		rows[i] = []string{
			fmt.Sprint(int(p.Pid)),
			fmt.Sprint(p.Priority),
			fmt.Sprint(int(p.Burst)),
			fmt.Sprint(int(p.Arrival)),
			fmt.Sprint(p.FirstRun.OrElse(-1)),
			fmt.Sprint(int(p.Waiting)),
			fmt.Sprint(int(p.Turnaround)),
			fmt.Sprint(int(p.Completion)),
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "First Run", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Utilization\n%.1f%%", summary.Utilization*100),
		fmt.Sprintf("Average\n%.2f", summary.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", summary.AvgTurnaround),
		fmt.Sprintf("Throughput\n%.2f/t", summary.Throughput)})
	table.Render()
}
