package orchestration

// ProgressUpdate reports that one more worker of a run has finished.
type ProgressUpdate struct {
	RunID   string
	Workers WorkerCount
	// Completed is the number of workers finished so far, Total the number spawned.
	Completed int
	Total     int
	// Failed is set when the finishing worker returned an error.
	Failed bool
}

// Fraction returns Completed/Total in [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 1
	}
	return float64(u.Completed) / float64(u.Total)
}

// ProgressBufferMultiplier sizes the progress channel relative to the largest
// worker count so that sends from completion callbacks rarely hit a full buffer.
const ProgressBufferMultiplier = 2

// NewProgressChannel returns a channel large enough for a campaign whose
// largest run spawns maxWorkers workers.
func NewProgressChannel(maxWorkers int) chan ProgressUpdate {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return make(chan ProgressUpdate, maxWorkers*ProgressBufferMultiplier)
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
