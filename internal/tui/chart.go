package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/primebench/internal/orchestration"
)

type speedupBar struct {
	label   string
	threads int
	ratio   float64
}

// ChartModel draws one horizontal bar per run with a known speedup, scaled
// against the largest thread count so that linear scaling fills the panel.
type ChartModel struct {
	bars   []speedupBar
	width  int
	height int
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// AddRun adds the bar of a finished run. Runs without a known speedup and the
// baseline itself are skipped.
func (c *ChartModel) AddRun(stats orchestration.RunStatistics, speedup orchestration.Speedup) {
	if !speedup.Known || stats.WorkerCount.IsBaseline() {
		return
	}
	c.bars = append(c.bars, speedupBar{label: stats.Label(), threads: stats.WorkerCount.Threads(), ratio: speedup.Ratio})
}

// SetSummary rebuilds the bars from a final summary.
func (c *ChartModel) SetSummary(s orchestration.Summary) {
	c.bars = c.bars[:0]
	for _, r := range s.Runs {
		c.AddRun(r.Stats, r.Speedup)
	}
}

// Len returns the number of bars.
func (c ChartModel) Len() int { return len(c.bars) }

// View renders the chart.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Speedup vs main thread"))
	if len(c.bars) == 0 {
		b.WriteString("\n" + dimStyle.Render(" waiting for a baseline..."))
	}

	scale := 1
	for _, bar := range c.bars {
		scale = max(scale, bar.threads)
	}
	barWidth := max(c.width-20, 1)
	for _, bar := range c.bars {
		n := min(int(bar.ratio/float64(scale)*float64(barWidth)), barWidth)
		n = max(n, 0)
		fmt.Fprintf(&b, "\n %4s %s%s %5.2fx",
			bar.label,
			chartBarStyle.Render(strings.Repeat("█", n)),
			strings.Repeat(" ", barWidth-n),
			bar.ratio)
	}

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
