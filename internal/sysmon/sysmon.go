// Package sysmon samples machine-wide CPU and memory usage and the process
// CPU time consumed by a run.
package sysmon

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	LogicalCPUs int
}

// Sample collects a system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Fields are zero on error.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPUs = n
	}
	return s
}

// CPUClock measures process CPU time (user + system) across a section.
type CPUClock struct {
	start time.Duration
	ok    bool
}

// StartCPUClock reads the process CPU time. On platforms without getrusage the
// clock reports zero.
func StartCPUClock() CPUClock {
	d, err := ProcessCPUTime()
	return CPUClock{start: d, ok: err == nil}
}

// Elapsed returns the CPU time consumed since the clock started.
func (c CPUClock) Elapsed() time.Duration {
	if !c.ok {
		return 0
	}
	now, err := ProcessCPUTime()
	if err != nil || now < c.start {
		return 0
	}
	return now - c.start
}
