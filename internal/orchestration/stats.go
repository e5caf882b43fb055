package orchestration

import (
	"strconv"
	"time"

	"github.com/agbru/primebench/internal/metrics"
)

// WorkerCount is the number of workers of a run. Baseline runs the workload on
// the calling goroutine without spawning anything.
type WorkerCount int

// Baseline is the sentinel worker count of the single-threaded reference run.
const Baseline WorkerCount = 0

// BaselineLabel is how the baseline is labelled in reports.
const BaselineLabel = "(Main Thread)"

// IsBaseline reports whether c is the baseline sentinel.
func (c WorkerCount) IsBaseline() bool { return c == Baseline }

// Label returns the worker count as printed in reports.
func (c WorkerCount) Label() string {
	if c.IsBaseline() {
		return BaselineLabel
	}
	return strconv.Itoa(int(c))
}

// String implements fmt.Stringer.
func (c WorkerCount) String() string { return c.Label() }

// Threads returns the number of goroutines scanning in parallel, 1 for the baseline.
func (c WorkerCount) Threads() int {
	if c.IsBaseline() {
		return 1
	}
	return int(c)
}

// RunStatistics describes one completed run. It is built once and not modified.
type RunStatistics struct {
	RunID       string
	WorkerCount WorkerCount
	MaxNumber   int
	Elapsed     time.Duration
	PrimeCount  int
	// CPUTime is the process CPU time spent during the run, zero if unknown.
	CPUTime time.Duration
	Memory  metrics.MemoryDelta
	// GC is the collector activity while it was suspended for the run.
	GC metrics.GCStats
}

// Label returns the worker count label.
func (s RunStatistics) Label() string { return s.WorkerCount.Label() }

// ElapsedMillis returns the elapsed time in fractional milliseconds.
func (s RunStatistics) ElapsedMillis() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

// CPUUtilization returns CPUTime divided by wall time, roughly the number of
// cores kept busy. Zero when either is unknown.
func (s RunStatistics) CPUUtilization() float64 {
	if s.CPUTime <= 0 || s.Elapsed <= 0 {
		return 0
	}
	return float64(s.CPUTime) / float64(s.Elapsed)
}

// RunResult is what a run hands back: its statistics and every prime found,
// sorted ascending.
type RunResult struct {
	Stats  RunStatistics
	Primes []int
}

// Speedup compares a run with the baseline.
type Speedup struct {
	// Known is false when there was no baseline to compare with.
	Known bool
	// Ratio is baseline elapsed divided by run elapsed.
	Ratio float64
	// Efficiency is Ratio divided by the number of workers.
	Efficiency float64
}

// SpeedupOver computes the speedup of run over baseline.
func SpeedupOver(baseline *RunStatistics, run RunStatistics) Speedup {
	if baseline == nil || baseline.Elapsed <= 0 || run.Elapsed <= 0 {
		return Speedup{}
	}
	ratio := float64(baseline.Elapsed) / float64(run.Elapsed)
	return Speedup{
		Known:      true,
		Ratio:      ratio,
		Efficiency: ratio / float64(run.WorkerCount.Threads()),
	}
}

// RunSummary pairs a run with its speedup.
type RunSummary struct {
	Stats   RunStatistics
	Speedup Speedup
}

// Summary is the outcome of a campaign.
type Summary struct {
	CampaignID string
	MaxNumber  int
	// Runs are in execution order.
	Runs []RunSummary
	// Baseline is nil when the campaign ran without one.
	Baseline *RunStatistics
	// Complete is true once every step has run.
	Complete bool
}

// Consistent reports whether every run found the same number of primes.
func (s Summary) Consistent() bool {
	for _, r := range s.Runs {
		if r.Stats.PrimeCount != s.Runs[0].Stats.PrimeCount {
			return false
		}
	}
	return true
}

// Fastest returns the run with the shortest elapsed time.
func (s Summary) Fastest() (RunSummary, bool) {
	if len(s.Runs) == 0 {
		return RunSummary{}, false
	}
	best := s.Runs[0]
	for _, r := range s.Runs[1:] {
		if r.Stats.Elapsed < best.Stats.Elapsed {
			best = r
		}
	}
	return best, true
}
