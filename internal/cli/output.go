// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayPrimes], [DisplayRunDetails], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatRunLine], [FormatProgress].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultsCSV].

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/sysmon"
	"github.com/agbru/primebench/internal/ui"
)

const (
	// DumpLimit is the number of primes printed by the debug dump.
	DumpLimit = 1000
	// DumpRowWidth is the number of primes per dump row.
	DumpRowWidth = 10
)

// FormatRunLine renders the one-line report of a run, e.g.
// "Max number: 10000000, Threads: 4, Time taken: 812.5ms, Number of primes: 664579".
func FormatRunLine(stats orchestration.RunStatistics) string {
	return fmt.Sprintf("Max number: %d, Threads: %s, Time taken: %s, Number of primes: %d",
		stats.MaxNumber, stats.Label(), format.FormatMillis(stats.Elapsed), stats.PrimeCount)
}

// FormatStartLine renders the line announcing a run.
func FormatStartLine(count orchestration.WorkerCount) string {
	if count.IsBaseline() {
		return "Starting baseline benchmark on main thread..."
	}
	return fmt.Sprintf("Starting next benchmark with %d thread(s)...", int(count))
}

// DisplayPrimes prints the smallest DumpLimit primes, DumpRowWidth per row.
// primes must be sorted ascending; a short list prints fewer rows.
func DisplayPrimes(out io.Writer, primes []int) {
	if len(primes) > DumpLimit {
		primes = primes[:DumpLimit]
	}
	var row strings.Builder
	for start := 0; start < len(primes); start += DumpRowWidth {
		row.Reset()
		end := min(start+DumpRowWidth, len(primes))
		for i, p := range primes[start:end] {
			if i > 0 {
				row.WriteByte(' ')
			}
			row.WriteString(strconv.Itoa(p))
		}
		fmt.Fprintln(out, row.String())
	}
}

// DisplayRunDetails prints the verbose statistics of a run.
func DisplayRunDetails(out io.Writer, stats orchestration.RunStatistics, speedup orchestration.Speedup, sys sysmon.Stats) {
	fmt.Fprintf(out, "  Run ID:          %s\n", stats.RunID)
	if speedup.Known {
		fmt.Fprintf(out, "  Speedup:         %s%.2fx%s (efficiency %.0f%%)\n",
			ui.ColorGreen(), speedup.Ratio, ui.ColorReset(), speedup.Efficiency*100)
	}
	if stats.CPUTime > 0 {
		fmt.Fprintf(out, "  CPU time:        %s (%.2f cores busy)\n",
			format.FormatExecutionDuration(stats.CPUTime), stats.CPUUtilization())
	}
	DisplayMemoryStats(out, stats)
	if sys.LogicalCPUs > 0 {
		fmt.Fprintf(out, "  System:          %s%.1f%%%s CPU, %.1f%% memory, %d logical CPUs\n",
			ui.ColorCyan(), sys.CPUPercent, ui.ColorReset(), sys.MemPercent, sys.LogicalCPUs)
	}
}

// DisplayMemoryStats shows the heap activity of a run.
func DisplayMemoryStats(out io.Writer, stats orchestration.RunStatistics) {
	m := stats.Memory
	fmt.Fprintf(out, "  Allocated:       %s in %d objects\n", format.FormatBytes(m.Allocated), m.Mallocs)
	fmt.Fprintf(out, "  Live heap:       %s\n", format.FormatBytes(m.HeapAlloc))
	if m.GCCycles > 0 {
		fmt.Fprintf(out, "  GC:              %d cycles, %.2fms paused\n", m.GCCycles, float64(m.GCPause)/1e6)
	} else {
		fmt.Fprintf(out, "  GC:              0 cycles\n")
	}
	if g := stats.GC; g.Suspended {
		fmt.Fprintf(out, "  GC control:      suspended, %s allocated, %d cycles\n",
			format.FormatBytes(g.TotalAlloc), g.NumGC)
	}
}

// WriteResultsCSV writes every run of summary to path as CSV, preceded by a
// '#'-commented header. An empty path writes nothing.
func WriteResultsCSV(path string, summary orchestration.Summary) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := writeResults(file, summary, time.Now()); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return file.Close()
}

func writeResults(w io.Writer, summary orchestration.Summary, generated time.Time) error {
	fmt.Fprintf(w, "# primebench results\n")
	fmt.Fprintf(w, "# Generated: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintf(w, "# Campaign: %s\n", summary.CampaignID)
	fmt.Fprintf(w, "# Max number: %d\n", summary.MaxNumber)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run_id", "workers", "elapsed_ms", "primes", "cpu_ms", "speedup", "efficiency"}); err != nil {
		return err
	}
	for _, r := range summary.Runs {
		speedup, efficiency := "", ""
		if r.Speedup.Known {
			speedup = strconv.FormatFloat(r.Speedup.Ratio, 'f', 3, 64)
			efficiency = strconv.FormatFloat(r.Speedup.Efficiency, 'f', 3, 64)
		}
		workers := strconv.Itoa(int(r.Stats.WorkerCount))
		if r.Stats.WorkerCount.IsBaseline() {
			workers = "baseline"
		}
		record := []string{
			r.Stats.RunID,
			workers,
			strconv.FormatFloat(r.Stats.ElapsedMillis(), 'f', -1, 64),
			strconv.Itoa(r.Stats.PrimeCount),
			strconv.FormatFloat(float64(r.Stats.CPUTime)/float64(time.Millisecond), 'f', -1, 64),
			speedup,
			efficiency,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
