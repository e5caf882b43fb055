package tui

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primebench/internal/orchestration"
	"github.com/agbru/primebench/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	progressHeight        = 1
	footerHeight          = 1
	minBodyHeight         = 6
	RunsPanelWidthPercent = 55
	MetricsPanelHeight    = 5
	tickInterval          = 500 * time.Millisecond
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-progressHeight-footerHeight, minBodyHeight)
}

func (l LayoutManager) runsWidth() int {
	return l.width * RunsPanelWidthPercent / 100
}

func (l LayoutManager) rightWidth() int {
	return l.width - l.runsWidth()
}

func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelHeight, l.bodyHeight()/2)
}

func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Config is what the dashboard needs to know up front.
type Config struct {
	MaxNumber int
	Version   string
	// Cancel stops the campaign when the user quits.
	Cancel context.CancelFunc
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header  HeaderModel
	runs    RunsModel
	metrics MetricsModel
	chart   ChartModel
	bar     progress.Model
	help    help.Model
	keymap  KeyMap

	LayoutManager

	cancel   context.CancelFunc
	current  string
	fraction float64
	paused   bool
	done     bool
	err      error
}

// NewModel creates a new TUI model.
func NewModel(cfg Config) Model {
	cancel := cfg.Cancel
	if cancel == nil {
		cancel = func() {}
	}
	return Model{
		header:  NewHeaderModel(cfg.Version, cfg.MaxNumber),
		metrics: NewMetricsModel(),
		bar:     progress.New(progress.WithDefaultGradient()),
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		cancel:  cancel,
	}
}

// Init starts periodic sampling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleMemStatsCmd(), sampleSysStatsCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case RunStartedMsg:
		m.runs.Start(msg.Count)
		m.current = msg.Count.Label()
		m.fraction = 0
		return m, nil

	case ProgressMsg:
		m.fraction = msg.Update.Fraction()
		return m, nil

	case RunFinishedMsg:
		m.runs.Finish(msg.Stats, msg.Speedup)
		m.chart.AddRun(msg.Stats, msg.Speedup)
		m.fraction = 1
		return m, nil

	case CampaignDoneMsg:
		m.runs.SetSummary(msg.Summary)
		m.chart.SetSummary(msg.Summary)
		m.finish(nil)
		return m, nil

	case CampaignErrorMsg:
		m.finish(msg.Err)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) finish(err error) {
	m.done = true
	m.err = err
	m.current = ""
	m.header.SetDone()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Up):
		m.runs.ScrollUp()
	case key.Matches(msg, m.keymap.Down):
		m.runs.ScrollDown()
	}
	return m, nil
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.runs.SetSize(m.runsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
	m.bar.Width = max(m.width-30, 10)
	m.help.Width = m.width
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.runs.View(), right)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), m.progressView(), body, m.footerView())
}

func (m Model) progressView() string {
	if m.current == "" {
		return ""
	}
	return fmt.Sprintf(" Run %-14s %s", m.current, m.bar.ViewAs(m.fraction))
}

func (m Model) footerView() string {
	var status string
	switch {
	case m.err != nil && errors.Is(m.err, context.Canceled):
		status = statusPausedStyle.Render("CANCELED")
	case m.err != nil:
		status = statusErrorStyle.Render("FAILED: " + m.err.Error())
	case m.done:
		status = statusDoneStyle.Render(fmt.Sprintf("DONE (%d runs)", m.runs.Len()))
	case m.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return " " + status + "  " + m.help.View(m.keymap)
}

// Done reports whether the campaign has ended.
func (m Model) Done() bool { return m.done }

// Err returns the error the campaign ended with, if any.
func (m Model) Err() error { return m.err }

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample(context.Background())
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// Dashboard couples a bubbletea program with the reporters feeding it.
type Dashboard struct {
	ref     *programRef
	program *tea.Program
}

// NewDashboard creates the program. Run must be called for it to show up;
// until then, messages sent by the reporters block.
func NewDashboard(cfg Config, opts ...tea.ProgramOption) *Dashboard {
	initTUIStyles()
	ref := &programRef{}
	p := tea.NewProgram(NewModel(cfg), opts...)
	ref.SetProgram(p)
	return &Dashboard{ref: ref, program: p}
}

// Reporter returns the campaign reporter feeding the dashboard.
func (d *Dashboard) Reporter() orchestration.Reporter { return &TUIReporter{ref: d.ref} }

// ProgressReporter returns the per-run progress consumer feeding the dashboard.
func (d *Dashboard) ProgressReporter() orchestration.ProgressReporter {
	return &TUIProgressReporter{ref: d.ref}
}

// Fail shows a campaign error. A nil error is ignored.
func (d *Dashboard) Fail(err error) {
	if err != nil {
		d.ref.Send(CampaignErrorMsg{Err: err})
	}
}

// Run blocks until the user quits. Later reporter calls are dropped.
func (d *Dashboard) Run() error {
	defer d.ref.Close()
	_, err := d.program.Run()
	return err
}
