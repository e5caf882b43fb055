package config

import "runtime"

// ApplyAdaptiveWorkerCounts fills an empty worker list with counts derived
// from the number of CPUs. A non-empty list is returned untouched.
func ApplyAdaptiveWorkerCounts(cfg AppConfig) AppConfig {
	if len(cfg.WorkerCounts) > 0 {
		return cfg
	}
	cfg.WorkerCounts = AdaptiveWorkerCounts(runtime.NumCPU(), cfg.MaxWorkers)
	return cfg
}

// AdaptiveWorkerCounts returns the powers of two up to numCPU, followed by
// numCPU itself when it is not a power of two. Counts above limit are dropped;
// a non-positive limit means no limit.
func AdaptiveWorkerCounts(numCPU, limit int) []int {
	if numCPU < 1 {
		numCPU = 1
	}
	if limit > 0 && numCPU > limit {
		numCPU = limit
	}
	var counts []int
	for n := 1; n <= numCPU; n *= 2 {
		counts = append(counts, n)
	}
	if counts[len(counts)-1] != numCPU {
		counts = append(counts, numCPU)
	}
	return counts
}
