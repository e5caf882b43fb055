// Package worker runs one task per goroutine behind a handle with an explicit
// lifecycle: Created, Running, Completed, Released.
//
// A handle is spawned with its task and argument, dispatched with a completion
// callback, and released once the callback has run. Operations attempted in
// the wrong state return an apperrors.LifecycleError. Handles also carry an
// optional message channel (see PostMessage and OnMessage) that is independent
// from the task and its completion.
package worker

import (
	"fmt"
	"sync"
	"sync/atomic"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
)

// State is the lifecycle state of a handle.
type State int32

const (
	// Created is the state of a handle that has not been dispatched yet.
	Created State = iota
	// Running means the task is executing on the worker goroutine.
	Running
	// Completed means the task returned and its completion callback has run.
	Completed
	// Released is terminal: the handle's resources have been reclaimed.
	Released
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Task is the entry point bound to a handle at spawn time.
type Task[A, R any] func(arg A) (R, error)

// CompletionFunc is invoked exactly once when the task of h returns.
// err is nil or an apperrors.WorkerError.
type CompletionFunc[A, R any] func(h *Handle[A, R], arg A, result R, err error)

var nextID atomic.Int64

// Handle is one spawned worker. The zero value is not usable; use Spawn.
type Handle[A, R any] struct {
	id     int
	task   Task[A, R]
	arg    A
	logger logging.Logger

	mu        sync.Mutex
	state     State
	result    R
	err       error
	inbound   InboundFunc
	onMessage func(msg any)
	onRelease func()

	done     chan struct{}
	inflight sync.WaitGroup
}

// Spawn creates a handle bound to task and arg. Nothing runs until Dispatch.
func Spawn[A, R any](task Task[A, R], arg A, opts ...Option) *Handle[A, R] {
	o := options{id: -1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id < 0 {
		o.id = int(nextID.Add(1))
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	return &Handle[A, R]{
		id:        o.id,
		task:      task,
		arg:       arg,
		logger:    o.logger,
		inbound:   o.inbound,
		onRelease: o.onRelease,
		done:      make(chan struct{}),
	}
}

// ID returns the identifier of the handle.
func (h *Handle[A, R]) ID() int { return h.id }

// Arg returns the argument the handle was spawned with.
func (h *Handle[A, R]) Arg() A { return h.arg }

// State returns the current lifecycle state.
func (h *Handle[A, R]) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Done returns a channel closed after the task returned and the completion
// callback finished.
func (h *Handle[A, R]) Done() <-chan struct{} { return h.done }

// Alive reports whether the worker has not finished yet, that is whether Done
// is still open.
func (h *Handle[A, R]) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Result returns the task's result and error. It is only meaningful once Done
// is closed; before that it returns a LifecycleError.
func (h *Handle[A, R]) Result() (R, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != Completed && h.state != Released {
		var zero R
		return zero, h.violation("read result")
	}
	return h.result, h.err
}

// Dispatch starts the task on a new goroutine. When the task returns,
// onComplete is called on the worker goroutine, then the handle moves to
// Completed and Done is closed. A nil onComplete is allowed.
func (h *Handle[A, R]) Dispatch(onComplete CompletionFunc[A, R]) error {
	h.mu.Lock()
	if h.state != Created {
		err := h.violation("dispatch")
		h.mu.Unlock()
		return err
	}
	h.state = Running
	h.mu.Unlock()

	h.logger.Debug("worker dispatched", logging.Int("worker", h.id))
	go h.run(onComplete)
	return nil
}

func (h *Handle[A, R]) run(onComplete CompletionFunc[A, R]) {
	defer close(h.done)

	result, err := h.invoke()
	if err != nil {
		h.logger.Warn("worker task failed", logging.Int("worker", h.id), logging.Err(err))
	}
	if onComplete != nil {
		onComplete(h, h.arg, result, err)
	}

	h.mu.Lock()
	h.result, h.err = result, err
	h.state = Completed
	h.mu.Unlock()
}

func (h *Handle[A, R]) invoke() (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero R
			result = zero
			err = apperrors.WorkerError{Worker: h.id, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	result, err = h.task(h.arg)
	if err != nil {
		err = apperrors.WorkerError{Worker: h.id, Cause: err}
	}
	return result, err
}

// Release reclaims the handle. It is only legal once the task has completed;
// releasing in any other state, including twice, returns a LifecycleError.
// Release waits for message handlers still in flight.
func (h *Handle[A, R]) Release() error {
	h.mu.Lock()
	if h.state != Completed {
		err := h.violation("release")
		h.mu.Unlock()
		return err
	}
	h.state = Released
	onRelease := h.onRelease
	h.mu.Unlock()

	<-h.done
	h.inflight.Wait()

	if onRelease != nil {
		onRelease()
	}
	h.logger.Debug("worker released", logging.Int("worker", h.id))
	return nil
}

// violation must be called with h.mu held.
func (h *Handle[A, R]) violation(op string) error {
	return apperrors.LifecycleError{Worker: h.id, Op: op, State: h.state.String()}
}
