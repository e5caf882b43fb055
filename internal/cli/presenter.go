package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while workers finish.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, out io.Writer) {
	DisplayProgress(wg, progressChan, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentSummary displays the comparison table of a campaign: one row per
// run with its time, prime count, speedup and efficiency over the baseline.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentSummary(summary orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Benchmark Summary (1..%s) ---\n", format.FormatCount(summary.MaxNumber))

	type row struct{ threads, elapsed, primes, speedup, efficiency string }
	header := row{"Threads", "Time", "Primes", "Speedup", "Efficiency"}
	rows := make([]row, 0, len(summary.Runs))
	for _, r := range summary.Runs {
		rw := row{
			threads:    r.Stats.Label(),
			elapsed:    format.FormatMillis(r.Stats.Elapsed),
			primes:     format.FormatCount(r.Stats.PrimeCount),
			speedup:    "-",
			efficiency: "-",
		}
		if r.Speedup.Known {
			rw.speedup = fmt.Sprintf("%.2fx", r.Speedup.Ratio)
			rw.efficiency = fmt.Sprintf("%.0f%%", r.Speedup.Efficiency*100)
		}
		rows = append(rows, rw)
	}

	widths := [5]int{len(header.threads), len(header.elapsed), len(header.primes), len(header.speedup), len(header.efficiency)}
	for _, r := range rows {
		for i, cell := range [5]string{r.threads, r.elapsed, r.primes, r.speedup, r.efficiency} {
			widths[i] = max(widths[i], len(cell))
		}
	}

	cells := [5]string{header.threads, header.elapsed, header.primes, header.speedup, header.efficiency}
	for i, c := range cells {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), c, ui.ColorReset(), padRight("", widths[i]-len(c)))
	}
	fmt.Fprintln(out)

	fastest, _ := summary.Fastest()
	for _, r := range rows {
		threadsColor := ui.ColorBlue()
		if r.threads == fastest.Stats.Label() {
			threadsColor = ui.ColorGreen()
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s%s   %s\n",
			threadsColor, r.threads, ui.ColorReset(), padRight("", widths[0]-len(r.threads)),
			ui.ColorYellow(), r.elapsed, ui.ColorReset(), padRight("", widths[1]-len(r.elapsed)),
			r.primes, padRight("", widths[2]-len(r.primes)),
			r.speedup, padRight("", widths[3]-len(r.speedup)),
			r.efficiency)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
