package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primebench/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the number of finished workers of the
// current run. The spinner stops when a run's last worker reports and starts
// again with the next run's first update. Updates of a run that do not advance
// its Completed count are dropped. It returns when progressChan is closed and
// calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, out io.Writer) {
	defer wg.Done()

	var (
		s       Spinner
		runID   string
		highest int
		started bool
	)
	for u := range progressChan {
		if started && u.RunID == runID && u.Completed <= highest {
			continue
		}
		runID, highest, started = u.RunID, u.Completed, true
		if s == nil {
			s = newSpinner(spinner.WithWriter(out))
			s.Start()
		}
		s.UpdateSuffix(FormatProgress(u))
		if u.Completed >= u.Total {
			s.Stop()
			s = nil
		}
	}
	if s != nil {
		s.Stop()
	}
}

// FormatProgress renders a progress update as spinner suffix text.
func FormatProgress(u orchestration.ProgressUpdate) string {
	return fmt.Sprintf(" %d/%d workers done %s", u.Completed, u.Total, progressBar(u.Fraction(), ProgressBarWidth))
}

// progressBar generates a string representing a textual progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
