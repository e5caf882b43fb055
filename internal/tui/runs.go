package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/primebench/internal/format"
	"github.com/agbru/primebench/internal/orchestration"
)

type runRow struct {
	label   string
	stats   orchestration.RunStatistics
	speedup orchestration.Speedup
	done    bool
}

// RunsModel is the scrollable table of runs, in execution order. The run in
// progress is the last row.
type RunsModel struct {
	rows   []runRow
	offset int
	width  int
	height int
}

// SetSize updates dimensions.
func (m *RunsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Start appends a row for the run about to start.
func (m *RunsModel) Start(count orchestration.WorkerCount) {
	m.rows = append(m.rows, runRow{label: count.Label()})
	m.follow()
}

// Finish completes the last row, or appends one when Start was missed.
func (m *RunsModel) Finish(stats orchestration.RunStatistics, speedup orchestration.Speedup) {
	row := runRow{label: stats.Label(), stats: stats, speedup: speedup, done: true}
	if n := len(m.rows); n > 0 && !m.rows[n-1].done && m.rows[n-1].label == row.label {
		m.rows[n-1] = row
	} else {
		m.rows = append(m.rows, row)
	}
	m.follow()
}

// SetSummary replaces the rows with the final summary, which carries speedups
// computed after the fact when the baseline ran last.
func (m *RunsModel) SetSummary(s orchestration.Summary) {
	m.rows = m.rows[:0]
	for _, r := range s.Runs {
		m.rows = append(m.rows, runRow{label: r.Stats.Label(), stats: r.Stats, speedup: r.Speedup, done: true})
	}
	m.follow()
}

// Len returns the number of rows.
func (m RunsModel) Len() int { return len(m.rows) }

// ScrollUp moves the window one row up.
func (m *RunsModel) ScrollUp() {
	if m.offset > 0 {
		m.offset--
	}
}

// ScrollDown moves the window one row down.
func (m *RunsModel) ScrollDown() {
	if m.offset < m.maxOffset() {
		m.offset++
	}
}

// visibleRows is the number of table rows that fit in the panel.
func (m RunsModel) visibleRows() int {
	// Borders and the column header.
	return max(m.height-3, 1)
}

func (m RunsModel) maxOffset() int {
	return max(len(m.rows)-m.visibleRows(), 0)
}

// follow keeps the newest row in view.
func (m *RunsModel) follow() {
	m.offset = m.maxOffset()
}

// View renders the table.
func (m RunsModel) View() string {
	var b strings.Builder
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%-14s %12s %12s %9s %6s", "Threads", "Time", "Primes", "Speedup", "Eff.")))

	end := min(m.offset+m.visibleRows(), len(m.rows))
	for _, r := range m.rows[m.offset:end] {
		b.WriteString("\n")
		label := runLabelStyle.Render(fmt.Sprintf("%-14s", r.label))
		if !r.done {
			b.WriteString(label + " " + runningStyle.Render("running..."))
			continue
		}
		speedup, eff := "-", "-"
		if r.speedup.Known {
			speedup = fmt.Sprintf("%.2fx", r.speedup.Ratio)
			eff = fmt.Sprintf("%.0f%%", r.speedup.Efficiency*100)
		}
		fmt.Fprintf(&b, "%s %12s %12s %s %6s",
			label,
			format.FormatMillis(r.stats.Elapsed.Round(10*time.Microsecond)),
			format.FormatCount(r.stats.PrimeCount),
			speedupStyle.Render(fmt.Sprintf("%9s", speedup)),
			eff)
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}
