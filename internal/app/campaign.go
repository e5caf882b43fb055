package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/primebench/internal/barrier"
	"github.com/agbru/primebench/internal/cli"
	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/metrics"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/telemetry"
	"github.com/agbru/primebench/internal/tui"
	"github.com/agbru/primebench/internal/ui"
	"github.com/agbru/primebench/internal/worker"
)

// ExchangePayload is the message sent through the startup exchange.
const ExchangePayload = "ping"

// startup waits for the configured delay, then performs the message exchange.
func (a *Application) startup(ctx context.Context) error {
	if d := a.Config.StartupDelay; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	reply, err := orchestration.Exchange(ctx, ExchangePayload, a.logger)
	if err != nil {
		return fmt.Errorf("startup exchange: %w", err)
	}
	a.logger.Info("startup exchange done", logging.String("reply", fmt.Sprint(reply)))
	return nil
}

// bench holds the components of one campaign.
type bench struct {
	recorder *metrics.Recorder
	tracer   *telemetry.Tracer
	runner   *orchestration.Runner
	progress chan orchestration.ProgressUpdate
}

func (a *Application) newBench() *bench {
	cfg := a.Config
	b := &bench{
		recorder: metrics.NewRecorder(),
		tracer:   telemetry.NewTracer(a.tracerProvider),
		progress: orchestration.NewProgressChannel(slices.Max(append([]int{1}, cfg.WorkerCounts...))),
	}
	b.runner = orchestration.NewRunner(orchestration.RunnerConfig{
		MaxNumber:    cfg.MaxNumber,
		JoinMode:     barrier.Mode(cfg.JoinMode),
		PollInterval: cfg.PollInterval,
		GCMode:       metrics.GCMode(cfg.GCMode),
	},
		orchestration.WithLogger(a.logger),
		orchestration.WithTracer(b.tracer),
		orchestration.WithRecorder(b.recorder),
		orchestration.WithSpawner(worker.NewSpawner(cfg.MaxWorkers, a.logger)),
		orchestration.WithProgress(b.progress),
	)
	return b
}

func (a *Application) newCampaign(b *bench, reporter orchestration.Reporter) (*orchestration.Campaign, error) {
	return orchestration.NewCampaign(b.runner, reporter, orchestration.CampaignConfig{
		WorkerCounts: a.Config.WorkerCounts,
		Baseline:     orchestration.BaselinePosition(a.Config.Baseline),
	},
		orchestration.WithCampaignLogger(a.logger),
		orchestration.WithCampaignTracer(b.tracer),
		orchestration.WithCampaignRecorder(b.recorder),
	)
}

// runCLI runs the campaign with line output on out and the progress spinner
// on the error writer.
func (a *Application) runCLI(ctx context.Context, out io.Writer) int {
	b := a.newBench()
	reporter := cli.NewCLIReporter(out, cli.ReporterConfig{
		PrintPrimes: a.Config.PrintPrimes,
		Verbose:     a.Config.Verbose,
		Quiet:       a.Config.Quiet,
	})
	campaign, err := a.newCampaign(b, reporter)
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, ui.ErrorColors{})
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if a.Config.Quiet {
		progressReporter = orchestration.NullProgressReporter{}
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go progressReporter.DisplayProgress(&wg, b.progress, a.ErrWriter)

	runErr := campaign.Run(ctx)
	close(b.progress)
	wg.Wait()

	return a.finish(b, campaign.Summary(), runErr, out, !a.Config.Quiet)
}

// runTUI runs the campaign and the dashboard side by side. Quitting the
// dashboard cancels the campaign between runs; a campaign error is shown in
// the dashboard and printed once it exits.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := a.newBench()
	dash := tui.NewDashboard(tui.Config{
		MaxNumber: a.Config.MaxNumber,
		Version:   Version,
		Cancel:    cancel,
	}, tea.WithAltScreen(), tea.WithContext(ctx))

	campaign, err := a.newCampaign(b, dash.Reporter())
	if err != nil {
		return apperrors.HandleRunError(err, a.ErrWriter, ui.ErrorColors{})
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go dash.ProgressReporter().DisplayProgress(&wg, b.progress, io.Discard)

	var runErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(dash.Run)
	g.Go(func() error {
		runErr = campaign.Run(gctx)
		close(b.progress)
		wg.Wait()
		dash.Fail(runErr)
		return nil
	})
	if err := g.Wait(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !apperrors.IsContextError(err) {
		a.logger.Error("dashboard stopped", err)
	}

	return a.finish(b, campaign.Summary(), runErr, out, false)
}

// finish writes the requested result files and returns the exit code of the
// campaign.
func (a *Application) finish(b *bench, summary orchestration.Summary, runErr error, out io.Writer, present bool) int {
	code := apperrors.ExitSuccess
	if runErr != nil {
		code = apperrors.HandleRunError(runErr, a.ErrWriter, ui.ErrorColors{})
	} else {
		var presenter orchestration.ResultPresenter
		statusOut := io.Discard
		if present {
			presenter = cli.CLIResultPresenter{}
			statusOut = out
		}
		code = orchestration.AnalyzeSummary(summary, presenter, statusOut)
	}

	if path := a.Config.OutputFile; path != "" && len(summary.Runs) > 0 {
		if err := cli.WriteResultsCSV(path, summary); err != nil {
			fmt.Fprintf(a.ErrWriter, "%sError saving results: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return max(code, apperrors.ExitErrorGeneric)
		}
		if present {
			fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
		}
	}
	if path := a.Config.MetricsFile; path != "" {
		if err := b.recorder.WriteTextfile(path); err != nil {
			fmt.Fprintf(a.ErrWriter, "%sError writing metrics: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return max(code, apperrors.ExitErrorGeneric)
		}
	}
	return code
}
