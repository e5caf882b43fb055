// Package barrier signals once every tracked worker has finished.
//
// Both variants return immediately and fire their callback exactly once, on a
// goroutine owned by the barrier. AwaitAll waits on each worker's completion
// channel; AwaitAllPolling checks liveness on a fixed interval instead.
package barrier

import (
	"sync"
	"time"
)

// DefaultPollInterval is the liveness check period of AwaitAllPolling.
const DefaultPollInterval = 10 * time.Millisecond

// Joinable is the view of a worker the barrier needs.
type Joinable interface {
	// Done is closed once the worker has finished.
	Done() <-chan struct{}
	// Alive reports whether the worker has not finished yet.
	Alive() bool
}

// Join tracks one barrier. Its zero value is not usable.
type Join struct {
	once sync.Once
	done chan struct{}
	size int
}

func newJoin(size int) *Join {
	return &Join{done: make(chan struct{}), size: size}
}

// Done is closed after the completion callback has returned.
func (j *Join) Done() <-chan struct{} { return j.done }

// Wait blocks until the barrier has fired.
func (j *Join) Wait() { <-j.done }

// Size returns the number of workers tracked.
func (j *Join) Size() int { return j.size }

func (j *Join) fire(onComplete func()) {
	j.once.Do(func() {
		if onComplete != nil {
			onComplete()
		}
		close(j.done)
	})
}

// AwaitAll fires onComplete once every handle's Done channel is closed.
// An empty set fires right away, still on the barrier goroutine.
func AwaitAll[J Joinable](handles []J, onComplete func()) *Join {
	j := newJoin(len(handles))
	chans := make([]<-chan struct{}, len(handles))
	for i, h := range handles {
		chans[i] = h.Done()
	}

	go func() {
		for _, c := range chans {
			<-c
		}
		j.fire(onComplete)
	}()
	return j
}

// AwaitAllPolling fires onComplete the first time a tick finds every handle
// not alive. A non-positive interval uses DefaultPollInterval.
func AwaitAllPolling[J Joinable](handles []J, interval time.Duration, onComplete func()) *Join {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	j := newJoin(len(handles))
	pending := make([]J, len(handles))
	copy(pending, handles)

	go func() {
		if allFinished(pending) {
			j.fire(onComplete)
			return
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if allFinished(pending) {
				j.fire(onComplete)
				return
			}
		}
	}()
	return j
}

func allFinished[J Joinable](handles []J) bool {
	for _, h := range handles {
		if h.Alive() {
			return false
		}
	}
	return true
}

// Mode selects the barrier variant.
type Mode string

const (
	// ModeWait blocks on completion channels (AwaitAll).
	ModeWait Mode = "wait"
	// ModePoll checks liveness on a ticker (AwaitAllPolling).
	ModePoll Mode = "poll"
)

// Valid reports whether m names a known variant.
func (m Mode) Valid() bool { return m == ModeWait || m == ModePoll }

// Await dispatches to the variant selected by mode. Unknown modes use ModeWait.
func Await[J Joinable](mode Mode, interval time.Duration, handles []J, onComplete func()) *Join {
	if mode == ModePoll {
		return AwaitAllPolling(handles, interval, onComplete)
	}
	return AwaitAll(handles, onComplete)
}
