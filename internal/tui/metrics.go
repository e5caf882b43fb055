package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/primebench/internal/format"
)

// sampleHistory is the number of CPU and memory samples kept for sparklines.
const sampleHistory = 40

// MetricsModel displays runtime memory stats and system load.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	numGoroutine int
	cpuHistory   *RingBuffer
	memHistory   *RingBuffer
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpuHistory: NewRingBuffer(sampleHistory),
		memHistory: NewRingBuffer(sampleHistory),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats records a system load sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpuHistory.Push(msg.CPUPercent)
	m.memHistory.Push(msg.MemPercent)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, " %s %s%s%s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), metricValueStyle.Render(format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys)),
		pipe,
		metricLabelStyle.Render("GC:"), metricValueStyle.Render(fmt.Sprintf("%d", m.numGC)),
		pipe,
		metricLabelStyle.Render("Goroutines:"), metricValueStyle.Render(fmt.Sprintf("%d", m.numGoroutine)))

	fmt.Fprintf(&rows, "\n %s %s %s",
		metricLabelStyle.Render("CPU"), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpuHistory.Last())),
		cpuSparklineStyle.Render(RenderSparkline(m.cpuHistory.Slice(), 100)))
	fmt.Fprintf(&rows, "\n %s %s %s",
		metricLabelStyle.Render("MEM"), metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.memHistory.Last())),
		memSparklineStyle.Render(RenderSparkline(m.memHistory.Slice(), 100)))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}
