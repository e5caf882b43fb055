package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "primebench"

// Recorder collects benchmark metrics into its own Prometheus registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry       *prometheus.Registry
	runsTotal      *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	primesFound    *prometheus.GaugeVec
	speedup        *prometheus.GaugeVec
	workersSpawned prometheus.Counter
	cpuSeconds     *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Benchmark runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of completed runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"workers"}),
		primesFound: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "primes_found",
			Help:      "Primes found by the last run for a worker count.",
		}, []string{"workers"}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "speedup_ratio",
			Help:      "Baseline duration divided by run duration.",
		}, []string{"workers"}),
		workersSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workers_spawned_total",
			Help:      "Workers spawned across all runs.",
		}),
		cpuSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_cpu_seconds",
			Help:      "Process CPU time consumed by the last run for a worker count.",
		}, []string{"workers"}),
	}
	r.registry.MustRegister(r.runsTotal, r.runDuration, r.primesFound, r.speedup, r.workersSpawned, r.cpuSeconds)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRun records a completed run.
func (r *Recorder) ObserveRun(label string, elapsed time.Duration, primeCount int, cpu time.Duration) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues("ok").Inc()
	r.runDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	r.primesFound.WithLabelValues(label).Set(float64(primeCount))
	if cpu > 0 {
		r.cpuSeconds.WithLabelValues(label).Set(cpu.Seconds())
	}
}

// RunFailed counts an aborted run.
func (r *Recorder) RunFailed() {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues("failed").Inc()
}

// ObserveSpeedup records the speedup of a run over the baseline.
func (r *Recorder) ObserveSpeedup(label string, speedup float64) {
	if r == nil {
		return
	}
	r.speedup.WithLabelValues(label).Set(speedup)
}

// WorkersSpawned adds n spawned workers.
func (r *Recorder) WorkersSpawned(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.workersSpawned.Add(float64(n))
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
