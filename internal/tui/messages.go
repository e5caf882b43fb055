package tui

import (
	"time"

	"github.com/agbru/primebench/internal/orchestration"
)

// TickMsg drives periodic sampling of runtime and system stats.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// RunStartedMsg is sent before each run of the campaign.
type RunStartedMsg struct {
	Count     orchestration.WorkerCount
	MaxNumber int
}

// RunFinishedMsg is sent when a run completes.
type RunFinishedMsg struct {
	Stats   orchestration.RunStatistics
	Speedup orchestration.Speedup
}

// ProgressMsg forwards a worker completion inside the current run.
type ProgressMsg struct {
	Update orchestration.ProgressUpdate
}

// CampaignDoneMsg is sent once every run has completed.
type CampaignDoneMsg struct {
	Summary orchestration.Summary
}

// CampaignErrorMsg is sent when the campaign stops on an error.
type CampaignErrorMsg struct {
	Err error
}
