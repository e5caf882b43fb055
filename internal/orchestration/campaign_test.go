package orchestration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/primebench/internal/barrier"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/orchestration/mocks"
	"github.com/agbru/primebench/internal/worker"
)

type wc = orchestration.WorkerCount

func fakeResult(count wc, elapsed time.Duration) orchestration.RunResult {
	return orchestration.RunResult{Stats: orchestration.RunStatistics{
		WorkerCount: count,
		MaxNumber:   100,
		Elapsed:     elapsed,
		PrimeCount:  25,
	}}
}

// TestCampaign_RunsStepsInOrder drives [1, 2, 4] without a baseline: exactly
// three runs, in order, each reported before the next starts, then a single
// completion. A fourth RunNext does nothing.
func TestCampaign_RunsStepsInOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunExecutor(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	ctx := context.Background()

	runner.EXPECT().MaxNumber().Return(100).AnyTimes()
	var calls []*gomock.Call
	for _, n := range []wc{1, 2, 4} {
		calls = append(calls,
			reporter.EXPECT().ReportStart(n, 100),
			runner.EXPECT().RunOnce(gomock.Any(), n).Return(fakeResult(n, time.Millisecond), nil),
			reporter.EXPECT().ReportRun(fakeResult(n, time.Millisecond), orchestration.Speedup{}),
		)
	}
	complete := reporter.EXPECT().ReportComplete(gomock.Any()).Do(func(s orchestration.Summary) {
		if !s.Complete || len(s.Runs) != 3 || s.Baseline != nil {
			t.Errorf("unexpected summary %+v", s)
		}
	}).Times(1)
	gomock.InOrder(append(calls, complete)...)

	c, err := orchestration.NewCampaign(runner, reporter, orchestration.CampaignConfig{
		WorkerCounts: []int{1, 2, 4},
		Baseline:     orchestration.BaselineOff,
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != orchestration.StateIdle || c.Remaining() != 3 {
		t.Fatalf("fresh campaign: state=%s remaining=%d", c.State(), c.Remaining())
	}

	for i, want := range []wc{1, 2, 4} {
		res, ok, err := c.RunNext(ctx)
		if err != nil || !ok {
			t.Fatalf("RunNext #%d: ok=%v err=%v", i+1, ok, err)
		}
		if res.Stats.WorkerCount != want {
			t.Errorf("RunNext #%d ran %s, want %s", i+1, res.Stats.WorkerCount, want)
		}
	}
	if c.State() != orchestration.StateComplete {
		t.Errorf("state = %s, want complete", c.State())
	}

	if _, ok, err := c.RunNext(ctx); ok || err != nil {
		t.Errorf("4th RunNext: ok=%v err=%v, want a no-op", ok, err)
	}
}

func TestCampaign_StepOrderByBaselinePosition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		position orchestration.BaselinePosition
		want     []wc
	}{
		{orchestration.BaselineFirst, []wc{orchestration.Baseline, 1, 2}},
		{"", []wc{orchestration.Baseline, 1, 2}},
		{orchestration.BaselineLast, []wc{1, 2, orchestration.Baseline}},
		{orchestration.BaselineOff, []wc{1, 2}},
	}
	for _, tt := range tests {
		c, err := orchestration.NewCampaign(nil, nil, orchestration.CampaignConfig{WorkerCounts: []int{1, 2}, Baseline: tt.position})
		if err != nil {
			t.Fatalf("%q: %v", tt.position, err)
		}
		got := c.Steps()
		if len(got) != len(tt.want) {
			t.Fatalf("%q: steps = %v, want %v", tt.position, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: steps = %v, want %v", tt.position, got, tt.want)
				break
			}
		}
	}
}

func TestNewCampaign_Validation(t *testing.T) {
	t.Parallel()
	_, err := orchestration.NewCampaign(nil, nil, orchestration.CampaignConfig{WorkerCounts: []int{1, 0, 2}})
	var ve apperrors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "workerCounts[1]" {
		t.Errorf("expected ValidationError on workerCounts[1], got %v", err)
	}
	if _, err := orchestration.NewCampaign(nil, nil, orchestration.CampaignConfig{Baseline: "middle"}); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for an unknown position, got %v", err)
	}
	if _, err := orchestration.ParseBaselinePosition("last"); err != nil {
		t.Error(err)
	}
}

// TestCampaign_BaselineFirstReportsSpeedup checks the speedup handed to the
// reporter with the baseline running first.
func TestCampaign_BaselineFirstReportsSpeedup(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunExecutor(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	rec := metrics.NewRecorder()

	runner.EXPECT().MaxNumber().Return(100).AnyTimes()
	runner.EXPECT().RunOnce(gomock.Any(), orchestration.Baseline).Return(fakeResult(orchestration.Baseline, 400*time.Millisecond), nil)
	runner.EXPECT().RunOnce(gomock.Any(), wc(4)).Return(fakeResult(4, 100*time.Millisecond), nil)
	reporter.EXPECT().ReportStart(gomock.Any(), 100).Times(2)
	reporter.EXPECT().ReportRun(gomock.Any(), gomock.Any()).Times(2).Do(func(res orchestration.RunResult, sp orchestration.Speedup) {
		if !sp.Known {
			t.Errorf("speedup unknown for %s", res.Stats.Label())
		}
		if res.Stats.WorkerCount == 4 && (sp.Ratio != 4 || sp.Efficiency != 1) {
			t.Errorf("speedup for 4 workers = %+v", sp)
		}
	})
	reporter.EXPECT().ReportComplete(gomock.Any()).Times(1)

	c, err := orchestration.NewCampaign(runner, reporter,
		orchestration.CampaignConfig{WorkerCounts: []int{4}},
		orchestration.WithCampaignRecorder(rec))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	s := c.Summary()
	if s.Baseline == nil || s.Baseline.Elapsed != 400*time.Millisecond {
		t.Errorf("summary baseline = %+v", s.Baseline)
	}
}

// TestCampaign_BaselineLastBackfillsSpeedup checks that runs executed before
// the baseline get their speedup in the summary.
func TestCampaign_BaselineLastBackfillsSpeedup(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunExecutor(ctrl)
	reporter := mocks.NewMockReporter(ctrl)

	runner.EXPECT().MaxNumber().Return(100).AnyTimes()
	gomock.InOrder(
		runner.EXPECT().RunOnce(gomock.Any(), wc(2)).Return(fakeResult(2, 300*time.Millisecond), nil),
		runner.EXPECT().RunOnce(gomock.Any(), orchestration.Baseline).Return(fakeResult(orchestration.Baseline, 600*time.Millisecond), nil),
	)
	reporter.EXPECT().ReportStart(gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().ReportRun(gomock.Any(), gomock.Any()).AnyTimes()
	reporter.EXPECT().ReportComplete(gomock.Any()).Do(func(s orchestration.Summary) {
		if len(s.Runs) != 2 {
			t.Fatalf("runs = %d", len(s.Runs))
		}
		if sp := s.Runs[0].Speedup; !sp.Known || sp.Ratio != 2 {
			t.Errorf("backfilled speedup = %+v", sp)
		}
	})

	c, err := orchestration.NewCampaign(runner, reporter, orchestration.CampaignConfig{
		WorkerCounts: []int{2},
		Baseline:     orchestration.BaselineLast,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestCampaign_RunErrorAbortsCampaign(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunExecutor(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	failure := apperrors.RunError{Label: "2", Cause: errors.New("worker 1 failed")}

	runner.EXPECT().MaxNumber().Return(100).AnyTimes()
	runner.EXPECT().RunOnce(gomock.Any(), wc(1)).Return(fakeResult(1, time.Millisecond), nil)
	runner.EXPECT().RunOnce(gomock.Any(), wc(2)).Return(orchestration.RunResult{}, failure)
	reporter.EXPECT().ReportStart(gomock.Any(), gomock.Any()).Times(2)
	reporter.EXPECT().ReportRun(gomock.Any(), gomock.Any()).Times(1)
	reporter.EXPECT().ReportComplete(gomock.Any()).Times(0)

	c, err := orchestration.NewCampaign(runner, reporter, orchestration.CampaignConfig{
		WorkerCounts: []int{1, 2, 4},
		Baseline:     orchestration.BaselineOff,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Run(context.Background()); !errors.Is(err, failure.Cause) {
		t.Fatalf("Run() = %v, want the run error", err)
	}
	if c.State() != orchestration.StateFailed {
		t.Errorf("state = %s, want failed", c.State())
	}
	if len(c.Summary().Runs) != 1 {
		t.Errorf("runs reported before the failure must be kept")
	}
	if _, ok, err := c.RunNext(context.Background()); ok || err != nil {
		t.Errorf("RunNext after failure: ok=%v err=%v", ok, err)
	}
}

func TestCampaign_CancelledBetweenRuns(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunExecutor(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	runner.EXPECT().MaxNumber().Return(100).AnyTimes()
	runner.EXPECT().RunOnce(gomock.Any(), wc(1)).DoAndReturn(func(context.Context, wc) (orchestration.RunResult, error) {
		cancel()
		return fakeResult(1, time.Millisecond), nil
	})

	c, err := orchestration.NewCampaign(runner, nil, orchestration.CampaignConfig{
		WorkerCounts: []int{1, 2},
		Baseline:     orchestration.BaselineOff,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if c.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", c.Remaining())
	}
}

func TestCampaign_EmptyCompletesImmediately(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunExecutor(ctrl)
	reporter := mocks.NewMockReporter(ctrl)
	runner.EXPECT().MaxNumber().Return(100).AnyTimes()
	reporter.EXPECT().ReportComplete(gomock.Any()).Times(1)

	c, err := orchestration.NewCampaign(runner, reporter, orchestration.CampaignConfig{Baseline: orchestration.BaselineOff})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, ok, err := c.RunNext(context.Background()); ok || err != nil {
			t.Fatalf("RunNext: ok=%v err=%v", ok, err)
		}
	}
	if c.State() != orchestration.StateComplete {
		t.Errorf("state = %s", c.State())
	}
}

// TestCampaign_WithRealRunner runs a real campaign and checks, when each run
// starts, that every worker of the previous run has been released.
func TestCampaign_WithRealRunner(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	spawner := worker.NewSpawner(8, nil)
	runner := orchestration.NewRunner(orchestration.RunnerConfig{
		MaxNumber: 10000,
		JoinMode:  barrier.ModeWait,
	}, orchestration.WithSpawner(spawner))

	var order []wc
	reporter.EXPECT().ReportStart(gomock.Any(), 10000).Times(6).Do(func(count wc, _ int) {
		if spawner.Available() != 8 {
			t.Errorf("run %s started with %d workers still live", count, 8-spawner.Available())
		}
		order = append(order, count)
	})
	reporter.EXPECT().ReportRun(gomock.Any(), gomock.Any()).Times(6).Do(func(res orchestration.RunResult, _ orchestration.Speedup) {
		if res.Stats.PrimeCount != 1229 {
			t.Errorf("run %s found %d primes", res.Stats.Label(), res.Stats.PrimeCount)
		}
	})
	reporter.EXPECT().ReportComplete(gomock.Any()).Times(2)

	c, err := orchestration.NewCampaign(runner, reporter, orchestration.CampaignConfig{
		WorkerCounts: []int{1, 8},
		Baseline:     orchestration.BaselineFirst,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	firstID := c.ID()

	c.Reset()
	if c.State() != orchestration.StateIdle || c.Remaining() != 3 || c.ID() == firstID {
		t.Fatalf("Reset did not rewind: state=%s remaining=%d", c.State(), c.Remaining())
	}
	// Run once more, only partially, to show the cursor restarted.
	if _, ok, err := c.RunNext(context.Background()); !ok || err != nil {
		t.Fatal(ok, err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []wc{orchestration.Baseline, 1, 8}
	for i, got := range order {
		if got != want[i%3] {
			t.Errorf("start #%d = %s, want %s", i, got, want[i%3])
		}
	}
}
