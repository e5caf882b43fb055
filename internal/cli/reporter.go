package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/sysmon"
	"github.com/agbru/primebench/internal/ui"
)

// ReporterConfig selects what CLIReporter prints.
type ReporterConfig struct {
	// PrintPrimes enables the dump of the first primes after each run.
	PrintPrimes bool
	// Verbose adds speedup, CPU, memory and system statistics per run.
	Verbose bool
	// Quiet keeps only the per-run result lines.
	Quiet bool
}

// CLIReporter implements orchestration.Reporter with line-oriented output.
type CLIReporter struct {
	out    io.Writer
	cfg    ReporterConfig
	sample func(context.Context) sysmon.Stats
}

var _ orchestration.Reporter = (*CLIReporter)(nil)

// NewCLIReporter returns a reporter writing to out.
func NewCLIReporter(out io.Writer, cfg ReporterConfig) *CLIReporter {
	return &CLIReporter{out: out, cfg: cfg, sample: sysmon.Sample}
}

// ReportStart announces the next run.
func (r *CLIReporter) ReportStart(count orchestration.WorkerCount, _ int) {
	if r.cfg.Quiet {
		return
	}
	fmt.Fprintln(r.out, FormatStartLine(count))
}

// ReportRun prints the statistics of a completed run.
func (r *CLIReporter) ReportRun(result orchestration.RunResult, speedup orchestration.Speedup) {
	if r.cfg.PrintPrimes && !r.cfg.Quiet {
		DisplayPrimes(r.out, result.Primes)
	}
	fmt.Fprintln(r.out, FormatRunLine(result.Stats))
	if r.cfg.Verbose && !r.cfg.Quiet {
		DisplayRunDetails(r.out, result.Stats, speedup, r.sample(context.Background()))
	}
}

// ReportComplete marks the end of the campaign.
func (r *CLIReporter) ReportComplete(orchestration.Summary) {
	if r.cfg.Quiet {
		return
	}
	fmt.Fprintf(r.out, "%sComplete.%s\n", ui.ColorGreen(), ui.ColorReset())
}
