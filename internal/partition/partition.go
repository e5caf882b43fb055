// Package partition splits the benchmark workload [1, total] into contiguous
// half-open ranges, one per worker.
package partition

import (
	"fmt"
	"math"

	apperrors "github.com/agbru/primebench/internal/errors"
)

// Range is the half-open interval [First, Last) scanned by one worker.
// It is a value type: each worker receives its own copy.
type Range struct {
	First int
	Last  int
}

// Len returns the number of integers in the range.
func (r Range) Len() int { return r.Last - r.First }

// Empty reports whether the range contains no integer.
func (r Range) Empty() bool { return r.First >= r.Last }

// String formats the range as "[first, last)".
func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.First, r.Last) }

// MaxTotal is the largest workload whose exclusive upper bound total+1 still
// fits in an int.
const MaxTotal = math.MaxInt - 1

func checkTotal(total int) error {
	if total < 0 {
		return apperrors.ValidationError{Field: "total", Message: fmt.Sprintf("must not be negative, got %d", total)}
	}
	if total > MaxTotal {
		return apperrors.ValidationError{Field: "total", Message: fmt.Sprintf("must be at most %d, got %d", MaxTotal, total)}
	}
	return nil
}

// Whole returns the single range covering [1, total].
func Whole(total int) (Range, error) {
	if err := checkTotal(total); err != nil {
		return Range{}, err
	}
	return Range{First: 1, Last: total + 1}, nil
}

// Partition divides [1, total] into workerCount contiguous, non-overlapping
// ranges. Each range holds total/workerCount integers except the last, which
// also absorbs the remainder so that the union is exactly [1, total].
//
// When workerCount exceeds total the leading ranges are empty.
func Partition(total, workerCount int) ([]Range, error) {
	if workerCount < 1 {
		return nil, apperrors.ValidationError{Field: "workerCount", Message: fmt.Sprintf("must be at least 1, got %d", workerCount)}
	}
	if err := checkTotal(total); err != nil {
		return nil, err
	}

	countPerWorker := total / workerCount
	ranges := make([]Range, workerCount)
	for i := range ranges {
		ranges[i] = Range{
			First: i*countPerWorker + 1,
			Last:  i*countPerWorker + countPerWorker + 1,
		}
	}
	ranges[workerCount-1].Last = total + 1

	return ranges, nil
}
