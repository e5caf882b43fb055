package partition

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/primebench/internal/errors"
)

// coversExactly reports whether ranges are contiguous, ordered and cover [1, total].
func coversExactly(ranges []Range, total int) bool {
	next := 1
	for _, r := range ranges {
		if r.First != next || r.First > r.Last {
			return false
		}
		next = r.Last
	}
	return next == total+1
}

func TestPartition_Examples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		total   int
		workers int
		want    []Range
	}{
		{"single worker", 10, 1, []Range{{1, 11}}},
		{"even split", 10, 2, []Range{{1, 6}, {6, 11}}},
		{"remainder goes to last", 10, 3, []Range{{1, 4}, {4, 7}, {7, 11}}},
		{"more workers than numbers", 3, 5, []Range{{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 4}}},
		{"empty workload", 0, 2, []Range{{1, 1}, {1, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Partition(tt.total, tt.workers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d ranges, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestPartition_RemainderWouldBeDropped documents the edge case the last
// range exists to fix: with the per-worker arithmetic alone, 10,000,000 split
// across 6 workers stops 4 short of the end of the workload.
func TestPartition_RemainderWouldBeDropped(t *testing.T) {
	t.Parallel()
	const total, workers = 10_000_000, 6

	countPerWorker := total / workers
	naiveLast := (workers-1)*countPerWorker + countPerWorker + 1
	if dropped := total + 1 - naiveLast; dropped != total%workers || dropped == 0 {
		t.Fatalf("expected the naive bound to drop %d numbers, dropped %d", total%workers, dropped)
	}

	ranges, err := Partition(total, workers)
	if err != nil {
		t.Fatal(err)
	}
	last := ranges[len(ranges)-1]
	if last.Last != total+1 {
		t.Errorf("last range ends at %d, want %d", last.Last, total+1)
	}
	if last.Len() != countPerWorker+total%workers {
		t.Errorf("last range holds %d numbers, want %d", last.Len(), countPerWorker+total%workers)
	}
}

// TestPartition_CoverageProperty checks exact coverage of [1, total] for many
// (total, workers) pairs, most of which do not divide evenly.
func TestPartition_CoverageProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("union of ranges is exactly [1, total]", prop.ForAll(
		func(total, workers int) bool {
			ranges, err := Partition(total, workers)
			if err != nil || len(ranges) != workers {
				return false
			}
			return coversExactly(ranges, total)
		},
		gen.IntRange(0, 1_000_000),
		gen.IntRange(1, 64),
	))

	properties.Property("every integer is owned by exactly one range", prop.ForAll(
		func(total, workers int) bool {
			ranges, err := Partition(total, workers)
			if err != nil {
				return false
			}
			seen := make([]int, total+2)
			for _, r := range ranges {
				for n := r.First; n < r.Last; n++ {
					seen[n]++
				}
			}
			for n := 1; n <= total; n++ {
				if seen[n] != 1 {
					return false
				}
			}
			return seen[0] == 0 && seen[total+1] == 0
		},
		gen.IntRange(0, 5000),
		gen.IntRange(1, 40),
	))

	properties.Property("only the last range differs in size", prop.ForAll(
		func(total, workers int) bool {
			ranges, _ := Partition(total, workers)
			per := total / workers
			for _, r := range ranges[:len(ranges)-1] {
				if r.Len() != per {
					return false
				}
			}
			return ranges[len(ranges)-1].Len() == per+total%workers
		},
		gen.IntRange(0, 1_000_000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

func TestPartition_InvalidInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		total   int
		workers int
		field   string
	}{
		{"zero workers", 100, 0, "workerCount"},
		{"negative workers", 100, -2, "workerCount"},
		{"negative total", -1, 2, "total"},
		{"total overflows bound", math.MaxInt, 2, "total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Partition(tt.total, tt.workers)
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestRange_Helpers(t *testing.T) {
	t.Parallel()
	r := Range{First: 4, Last: 9}
	if r.Len() != 5 || r.Empty() {
		t.Errorf("unexpected Len/Empty for %v", r)
	}
	if r.String() != "[4, 9)" {
		t.Errorf("String() = %q", r.String())
	}
	if !(Range{First: 3, Last: 3}).Empty() {
		t.Error("[3, 3) should be empty")
	}
	if w, err := Whole(100); err != nil || w != (Range{First: 1, Last: 101}) {
		t.Errorf("Whole(100) = %v, %v", w, err)
	}
}

func TestWhole_Bounds(t *testing.T) {
	t.Parallel()
	for _, total := range []int{-1, math.MaxInt} {
		_, err := Whole(total)
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) || valErr.Field != "total" {
			t.Errorf("Whole(%d) err = %v, want total ValidationError", total, err)
		}
	}
	w, err := Whole(MaxTotal)
	if err != nil || w.Last != math.MaxInt || w.Empty() {
		t.Errorf("Whole(MaxTotal) = %v, %v", w, err)
	}
}

// TestPartition_LargestTotal checks that the bound arithmetic does not wrap
// at the top of the int range.
func TestPartition_LargestTotal(t *testing.T) {
	t.Parallel()
	for _, workers := range []int{1, 2, 3, 7} {
		ranges, err := Partition(MaxTotal, workers)
		if err != nil {
			t.Fatalf("Partition(MaxTotal, %d): %v", workers, err)
		}
		if !coversExactly(ranges, MaxTotal) {
			t.Errorf("Partition(MaxTotal, %d) = %v does not cover [1, MaxTotal]", workers, ranges)
		}
	}
}
