package orchestration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/primebench/internal/barrier"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/parallel"
	"github.com/agbru/primebench/internal/partition"
	"github.com/agbru/primebench/internal/primality"
	"github.com/agbru/primebench/internal/sysmon"
	"github.com/agbru/primebench/internal/telemetry"
	"github.com/agbru/primebench/internal/worker"
)

// DefaultMaxWorkers caps the live workers of a Runner built without WithSpawner.
const DefaultMaxWorkers = 256

// RunnerConfig holds the parameters shared by every run.
type RunnerConfig struct {
	// MaxNumber is the inclusive upper bound of the workload [1, MaxNumber].
	MaxNumber int
	// JoinMode selects how the runner waits for its workers.
	JoinMode barrier.Mode
	// PollInterval is the liveness check period in barrier.ModePoll.
	PollInterval time.Duration
	// GCMode controls the garbage collector during the timed section.
	GCMode metrics.GCMode
}

type scanTask = worker.Task[partition.Range, []int]

type scanHandle = worker.Handle[partition.Range, []int]

// Runner performs measured runs. It is not safe for concurrent RunOnce calls:
// runs are meant to be sequential.
type Runner struct {
	cfg      RunnerConfig
	spawner  *worker.Spawner
	logger   logging.Logger
	tracer   *telemetry.Tracer
	recorder *metrics.Recorder
	memory   *metrics.MemoryCollector
	progress chan<- ProgressUpdate
	task     scanTask
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(l logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithTracer sets the span source.
func WithTracer(t *telemetry.Tracer) RunnerOption {
	return func(r *Runner) { r.tracer = t }
}

// WithRecorder sets the Prometheus recorder.
func WithRecorder(rec *metrics.Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// WithSpawner sets the spawner bounding live workers.
func WithSpawner(s *worker.Spawner) RunnerOption {
	return func(r *Runner) { r.spawner = s }
}

// WithProgress makes the runner send a ProgressUpdate each time a worker
// finishes. Sends never block: updates are dropped when the channel is full.
func WithProgress(ch chan<- ProgressUpdate) RunnerOption {
	return func(r *Runner) { r.progress = ch }
}

// NewRunner creates a Runner.
func NewRunner(cfg RunnerConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		memory: metrics.NewMemoryCollector(),
		task:   scanRange,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}
	if r.spawner == nil {
		r.spawner = worker.NewSpawner(DefaultMaxWorkers, r.logger)
	}
	if r.tracer == nil {
		r.tracer = telemetry.NewTracer(nil)
	}
	if !r.cfg.JoinMode.Valid() {
		r.cfg.JoinMode = barrier.ModeWait
	}
	if r.cfg.GCMode == "" {
		r.cfg.GCMode = metrics.GCModeDisabled
	}
	return r
}

// scanRange is the worker entry point.
func scanRange(r partition.Range) ([]int, error) {
	return primality.Scan(r.First, r.Last), nil
}

// MaxNumber returns the upper bound of the workload.
func (r *Runner) MaxNumber() int { return r.cfg.MaxNumber }

// RunOnce performs one measured run with count workers, or on the calling
// goroutine for Baseline.
//
// The clock covers partitioning, spawning, scanning and the barrier; releasing
// workers and sorting the primes happen after it stops. A worker or spawn
// failure aborts the run with an apperrors.RunError and its partial results
// are discarded. There is no timeout: a worker that never returns blocks
// RunOnce forever, and ctx is only used for tracing.
func (r *Runner) RunOnce(ctx context.Context, count WorkerCount) (RunResult, error) {
	label := count.Label()
	if count < 0 {
		return RunResult{}, apperrors.RunError{
			Label: label,
			Cause: apperrors.ValidationError{Field: "workerCount", Message: fmt.Sprintf("must not be negative, got %d", int(count))},
		}
	}

	runID := uuid.NewString()
	_, span := r.tracer.StartRun(ctx, runID, label, int(count), r.cfg.MaxNumber)
	r.logger.Debug("run starting",
		logging.String("run_id", runID),
		logging.String("workers", label),
		logging.Int("max_number", r.cfg.MaxNumber))

	gc := metrics.NewGCController(r.cfg.GCMode, r.cfg.MaxNumber)
	gc.SetLogger(r.zerolog())
	memBefore := r.memory.Snapshot()
	gc.Begin()

	var (
		primes  []int
		elapsed time.Duration
		err     error
	)
	cpu := sysmon.StartCPUClock()
	if count.IsBaseline() {
		start := time.Now()
		var whole partition.Range
		if whole, err = partition.Whole(r.cfg.MaxNumber); err == nil {
			primes, err = r.task(whole)
		}
		elapsed = time.Since(start)
	} else {
		primes, elapsed, err = r.runWorkers(runID, count)
	}
	cpuTime := cpu.Elapsed()

	gc.End()

	if err != nil {
		r.recorder.RunFailed()
		telemetry.EndRun(span, 0, 0, err)
		r.logger.Error("run aborted", err, logging.String("run_id", runID), logging.String("workers", label))
		return RunResult{}, apperrors.RunError{Label: label, Cause: err}
	}

	stats := RunStatistics{
		RunID:       runID,
		WorkerCount: count,
		MaxNumber:   r.cfg.MaxNumber,
		Elapsed:     elapsed,
		PrimeCount:  len(primes),
		CPUTime:     cpuTime,
		Memory:      r.memory.Snapshot().Since(memBefore),
		GC:          gc.Stats(),
	}
	r.recorder.ObserveRun(label, elapsed, stats.PrimeCount, cpuTime)
	telemetry.EndRun(span, stats.PrimeCount, elapsed, nil)
	r.logger.Debug("run complete",
		logging.String("run_id", runID),
		logging.String("workers", label),
		logging.Duration("elapsed", elapsed),
		logging.Int("primes", stats.PrimeCount))

	return RunResult{Stats: stats, Primes: primes}, nil
}

// runWorkers partitions the workload, runs one worker per range and returns the
// sorted primes together with the time until the barrier fired.
func (r *Runner) runWorkers(runID string, count WorkerCount) ([]int, time.Duration, error) {
	n := int(count)
	start := time.Now()

	ranges, err := partition.Partition(r.cfg.MaxNumber, n)
	if err != nil {
		return nil, 0, err
	}
	handles, err := worker.SpawnAll(r.spawner, r.task, ranges)
	if err != nil {
		return nil, 0, err
	}
	r.recorder.WorkersSpawned(n)

	acc := NewResultAccumulator(primeCountEstimate(r.cfg.MaxNumber))
	var errs parallel.ErrorCollector
	// finished is guarded by progressMu so that updates leave in Completed order.
	var (
		progressMu sync.Mutex
		finished   int
	)

	onComplete := func(_ *scanHandle, _ partition.Range, found []int, err error) {
		if err != nil {
			errs.SetError(err)
		} else {
			acc.Append(found)
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		finished++
		r.sendProgress(ProgressUpdate{
			RunID:     runID,
			Workers:   count,
			Completed: finished,
			Total:     n,
			Failed:    err != nil,
		})
	}

	for _, h := range handles {
		// Fresh handles are always in Created state.
		if err := h.Dispatch(onComplete); err != nil {
			return nil, 0, err
		}
	}

	var elapsed time.Duration
	join := barrier.Await(r.cfg.JoinMode, r.cfg.PollInterval, handles, func() {
		elapsed = time.Since(start)
	})
	join.Wait()

	for _, h := range handles {
		if err := h.Release(); err != nil {
			errs.SetError(err)
		}
	}

	if err := errs.Err(); err != nil {
		return nil, 0, err
	}
	return acc.Sorted(), elapsed, nil
}

func (r *Runner) sendProgress(u ProgressUpdate) {
	if r.progress == nil {
		return
	}
	select {
	case r.progress <- u:
	default:
	}
}

func (r *Runner) zerolog() zerolog.Logger {
	if za, ok := r.logger.(*logging.ZerologAdapter); ok {
		return za.Zerolog()
	}
	return zerolog.Nop()
}
