// Package metrics records what a benchmark run cost: Prometheus series for
// the campaign, runtime memory deltas per run and GC control around the
// measured section.
package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot is a point-in-time reading of the Go runtime's memory stats.
type MemorySnapshot struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	Sys          uint64
	Mallocs      uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryDelta is what happened to the heap between two snapshots.
type MemoryDelta struct {
	// Allocated is the number of bytes allocated, including freed ones.
	Allocated uint64
	// Mallocs is the number of heap objects allocated.
	Mallocs uint64
	// GCCycles is the number of completed collections.
	GCCycles uint32
	// GCPause is the total stop-the-world pause time.
	GCPause time.Duration
	// HeapAlloc is the live heap at the second snapshot.
	HeapAlloc uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It stops the world briefly, so
// callers take it outside the timed section.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns the delta from before to s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		Mallocs:   s.Mallocs - before.Mallocs,
		GCCycles:  s.NumGC - before.NumGC,
		GCPause:   time.Duration(s.PauseTotalNs - before.PauseTotalNs),
		HeapAlloc: s.HeapAlloc,
	}
}
