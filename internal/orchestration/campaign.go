package orchestration

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/telemetry"
)

// BaselinePosition says where the baseline run goes in a campaign.
type BaselinePosition string

const (
	// BaselineFirst runs the baseline before any worker run, so that every run
	// can report its speedup as soon as it completes.
	BaselineFirst BaselinePosition = "first"
	// BaselineLast runs the baseline after the last worker run.
	BaselineLast BaselinePosition = "last"
	// BaselineOff skips the baseline.
	BaselineOff BaselinePosition = "off"
)

// ParseBaselinePosition validates a position name.
func ParseBaselinePosition(s string) (BaselinePosition, error) {
	switch p := BaselinePosition(s); p {
	case BaselineFirst, BaselineLast, BaselineOff:
		return p, nil
	default:
		return "", apperrors.ValidationError{Field: "baseline", Message: fmt.Sprintf("unknown position %q (want first, last or off)", s)}
	}
}

// CampaignConfig is the ordered list of worker counts to benchmark.
type CampaignConfig struct {
	WorkerCounts []int
	Baseline     BaselinePosition
}

// CampaignState is the state of a Campaign.
type CampaignState int

const (
	// StateIdle means no run has started yet.
	StateIdle CampaignState = iota
	// StateRunning means at least one run has completed and more remain.
	StateRunning
	// StateComplete is terminal: every step ran and the summary was reported.
	StateComplete
	// StateFailed is terminal: a run was aborted.
	StateFailed
)

// String returns the lower-case name of the state.
func (s CampaignState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Campaign runs one measured run per step, strictly in order. Steps are
// consumed through a cursor so the same campaign can be Reset and run again.
// A Campaign is driven from a single goroutine.
type Campaign struct {
	id       string
	runner   RunExecutor
	reporter Reporter
	steps    []WorkerCount
	cursor   int
	state    CampaignState
	runs     []RunSummary
	baseline *RunStatistics

	logger   logging.Logger
	tracer   *telemetry.Tracer
	recorder *metrics.Recorder
}

// CampaignOption configures a Campaign.
type CampaignOption func(*Campaign)

// WithCampaignLogger sets the logger.
func WithCampaignLogger(l logging.Logger) CampaignOption {
	return func(c *Campaign) { c.logger = l }
}

// WithCampaignTracer sets the span source.
func WithCampaignTracer(t *telemetry.Tracer) CampaignOption {
	return func(c *Campaign) { c.tracer = t }
}

// WithCampaignRecorder sets the recorder receiving speedups.
func WithCampaignRecorder(rec *metrics.Recorder) CampaignOption {
	return func(c *Campaign) { c.recorder = rec }
}

// NewCampaign builds a campaign from cfg. Worker counts must be positive; an
// empty Baseline means BaselineFirst.
func NewCampaign(runner RunExecutor, reporter Reporter, cfg CampaignConfig, opts ...CampaignOption) (*Campaign, error) {
	position := cfg.Baseline
	if position == "" {
		position = BaselineFirst
	}
	if _, err := ParseBaselinePosition(string(position)); err != nil {
		return nil, err
	}

	steps := make([]WorkerCount, 0, len(cfg.WorkerCounts)+1)
	if position == BaselineFirst {
		steps = append(steps, Baseline)
	}
	for i, n := range cfg.WorkerCounts {
		if n < 1 {
			return nil, apperrors.ValidationError{
				Field:   fmt.Sprintf("workerCounts[%d]", i),
				Message: fmt.Sprintf("must be at least 1, got %d", n),
			}
		}
		steps = append(steps, WorkerCount(n))
	}
	if position == BaselineLast {
		steps = append(steps, Baseline)
	}

	if reporter == nil {
		reporter = NullReporter{}
	}
	c := &Campaign{
		id:       uuid.NewString(),
		runner:   runner,
		reporter: reporter,
		steps:    steps,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	if c.tracer == nil {
		c.tracer = telemetry.NewTracer(nil)
	}
	return c, nil
}

// ID returns the campaign identifier. It changes on Reset.
func (c *Campaign) ID() string { return c.id }

// Steps returns the worker counts in execution order, Baseline included.
func (c *Campaign) Steps() []WorkerCount { return slices.Clone(c.steps) }

// State returns the current state.
func (c *Campaign) State() CampaignState { return c.state }

// Remaining returns the number of steps not run yet.
func (c *Campaign) Remaining() int { return len(c.steps) - c.cursor }

// RunNext runs the next step and reports it. ok is false when the campaign
// had already reached a terminal state, in which case nothing happens. After
// the last step the campaign becomes StateComplete and the summary is
// reported once. A run error moves the campaign to StateFailed.
func (c *Campaign) RunNext(ctx context.Context) (result RunResult, ok bool, err error) {
	if c.state == StateComplete || c.state == StateFailed {
		return RunResult{}, false, nil
	}
	if c.cursor >= len(c.steps) {
		c.complete()
		return RunResult{}, false, nil
	}

	step := c.steps[c.cursor]
	c.reporter.ReportStart(step, c.runner.MaxNumber())

	result, err = c.runner.RunOnce(ctx, step)
	if err != nil {
		c.state = StateFailed
		c.logger.Error("campaign aborted", err, logging.String("campaign_id", c.id), logging.String("step", step.Label()))
		return RunResult{}, false, err
	}

	c.cursor++
	c.state = StateRunning
	if step.IsBaseline() {
		stats := result.Stats
		c.baseline = &stats
		c.backfillSpeedups()
	}
	speedup := SpeedupOver(c.baseline, result.Stats)
	c.runs = append(c.runs, RunSummary{Stats: result.Stats, Speedup: speedup})
	if speedup.Known && !step.IsBaseline() {
		c.recorder.ObserveSpeedup(step.Label(), speedup.Ratio)
	}

	c.reporter.ReportRun(result, speedup)

	if c.cursor == len(c.steps) {
		c.complete()
	}
	return result, true, nil
}

// backfillSpeedups fills in speedups of runs that completed before the
// baseline, which only happens with BaselineLast.
func (c *Campaign) backfillSpeedups() {
	for i := range c.runs {
		if !c.runs[i].Speedup.Known {
			c.runs[i].Speedup = SpeedupOver(c.baseline, c.runs[i].Stats)
			if c.runs[i].Speedup.Known {
				c.recorder.ObserveSpeedup(c.runs[i].Stats.Label(), c.runs[i].Speedup.Ratio)
			}
		}
	}
}

func (c *Campaign) complete() {
	c.state = StateComplete
	c.logger.Debug("campaign complete", logging.String("campaign_id", c.id), logging.Int("runs", len(c.runs)))
	c.reporter.ReportComplete(c.Summary())
}

// Run calls RunNext until the campaign reaches a terminal state. ctx is only
// checked between runs: a run in progress always completes.
func (c *Campaign) Run(ctx context.Context) error {
	ctx, span := c.tracer.StartCampaign(ctx, c.id, len(c.steps))
	defer span.End()

	for {
		if err := ctx.Err(); err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		_, ok, err := c.RunNext(ctx)
		if err != nil {
			telemetry.RecordError(span, err)
			return err
		}
		if !ok {
			return nil
		}
	}
}

// Reset rewinds the campaign to its first step and forgets previous results.
func (c *Campaign) Reset() {
	c.id = uuid.NewString()
	c.cursor = 0
	c.state = StateIdle
	c.runs = nil
	c.baseline = nil
}

// Summary returns the runs completed so far.
func (c *Campaign) Summary() Summary {
	s := Summary{
		CampaignID: c.id,
		MaxNumber:  c.runner.MaxNumber(),
		Runs:       slices.Clone(c.runs),
		Complete:   c.state == StateComplete,
	}
	if c.baseline != nil {
		b := *c.baseline
		s.Baseline = &b
	}
	return s
}
