package orchestration

import (
	"math"
	"slices"
	"sync"
)

// ResultAccumulator collects the primes of one run. Workers append to it
// concurrently; each contribution is ascending but contributions interleave in
// completion order.
type ResultAccumulator struct {
	mu            sync.Mutex
	values        []int
	contributions int
}

// NewResultAccumulator preallocates room for sizeHint values.
func NewResultAccumulator(sizeHint int) *ResultAccumulator {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &ResultAccumulator{values: make([]int, 0, sizeHint)}
}

// Append adds one worker's contribution.
func (a *ResultAccumulator) Append(part []int) {
	a.mu.Lock()
	a.values = append(a.values, part...)
	a.contributions++
	a.mu.Unlock()
}

// Len returns the number of values collected so far.
func (a *ResultAccumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.values)
}

// Contributions returns how many times Append was called.
func (a *ResultAccumulator) Contributions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.contributions
}

// Sorted returns an ascending copy of the collected values.
func (a *ResultAccumulator) Sorted() []int {
	a.mu.Lock()
	out := slices.Clone(a.values)
	a.mu.Unlock()
	slices.Sort(out)
	return out
}

// primeCountEstimate returns an upper bound on pi(n) good enough to size the
// accumulator: 1.26 n / ln n (Rosser and Schoenfeld).
func primeCountEstimate(n int) int {
	if n < 17 {
		return 7
	}
	return int(1.26*float64(n)/math.Log(float64(n))) + 1
}
