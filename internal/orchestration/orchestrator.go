package orchestration

import (
	"fmt"
	"io"

	apperrors "github.com/agbru/primebench/internal/errors"
)

// AnalyzeSummary presents a finished campaign and returns the exit code it
// deserves.
//
// Every run scans the same workload, so every run must find the same number
// of primes; a disagreement means a partitioning or aggregation defect and is
// reported as a critical error.
func AnalyzeSummary(summary Summary, presenter ResultPresenter, out io.Writer) int {
	if presenter != nil {
		presenter.PresentSummary(summary, out)
	}

	if len(summary.Runs) == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No run completed.\n")
		return apperrors.ExitErrorRun
	}
	if !summary.Consistent() {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Runs disagree on the number of primes.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All %d runs found %d primes.\n", len(summary.Runs), summary.Runs[0].Stats.PrimeCount)
	return apperrors.ExitSuccess
}
