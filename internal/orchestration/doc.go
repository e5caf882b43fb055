// Package orchestration runs the benchmark: a Runner performs one measured run
// for a given worker count and a Campaign sequences runs for a list of worker
// counts around a single-threaded baseline. Presentation is kept behind the
// Reporter, ProgressReporter and ResultPresenter interfaces.
package orchestration
