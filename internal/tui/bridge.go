package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/primebench/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the campaign goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
	closed  bool
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Close drops every later message. It is called once the program has exited.
func (r *programRef) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p, closed := r.program, r.closed
	r.mu.RUnlock()
	if p != nil && !closed {
		p.Send(msg)
	}
}

// TUIReporter implements orchestration.Reporter by forwarding each event to
// the dashboard.
type TUIReporter struct {
	ref *programRef
}

var _ orchestration.Reporter = (*TUIReporter)(nil)

// ReportStart sends RunStartedMsg.
func (t *TUIReporter) ReportStart(count orchestration.WorkerCount, maxNumber int) {
	t.ref.Send(RunStartedMsg{Count: count, MaxNumber: maxNumber})
}

// ReportRun sends RunFinishedMsg. The primes themselves stay out of the TUI.
func (t *TUIReporter) ReportRun(result orchestration.RunResult, speedup orchestration.Speedup) {
	t.ref.Send(RunFinishedMsg{Stats: result.Stats, Speedup: speedup})
}

// ReportComplete sends CampaignDoneMsg.
func (t *TUIReporter) ReportComplete(summary orchestration.Summary) {
	t.ref.Send(CampaignDoneMsg{Summary: summary})
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress forwards every update until progressChan is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, _ io.Writer) {
	defer wg.Done()
	for update := range progressChan {
		t.ref.Send(ProgressMsg{Update: update})
	}
}
