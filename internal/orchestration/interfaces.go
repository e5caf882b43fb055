//go:generate mockgen -source=interfaces.go -destination=mocks/mock_reporter.go -package=mocks

package orchestration

import (
	"context"
	"io"
	"sync"
)

// Reporter receives the benchmark's progress at run granularity. It is the
// only way the orchestration layer talks to the user.
type Reporter interface {
	// ReportStart is called before each run.
	ReportStart(count WorkerCount, maxNumber int)
	// ReportRun is called once per completed run, in execution order.
	ReportRun(result RunResult, speedup Speedup)
	// ReportComplete is called once, after the last run of a campaign.
	ReportComplete(summary Summary)
}

// RunExecutor performs a single measured run. *Runner implements it.
type RunExecutor interface {
	RunOnce(ctx context.Context, count WorkerCount) (RunResult, error)
	MaxNumber() int
}

// ProgressReporter displays worker completion progress inside a run.
// DisplayProgress runs until progressChan is closed and calls wg.Done on return.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, out io.Writer) {
	f(wg, progressChan, out)
}

// NullProgressReporter drains the progress channel without output.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders a finished campaign.
type ResultPresenter interface {
	PresentSummary(summary Summary, out io.Writer)
}

// NullReporter ignores everything.
type NullReporter struct{}

func (NullReporter) ReportStart(WorkerCount, int) {}
func (NullReporter) ReportRun(RunResult, Speedup) {}
func (NullReporter) ReportComplete(Summary) {}

var (
	_ Reporter         = NullReporter{}
	_ ProgressReporter = NullProgressReporter{}
	_ RunExecutor      = (*Runner)(nil)
)
