package worker

import (
	"errors"

	"github.com/agbru/primebench/internal/logging"
)

// ErrNoInbound is returned by PostMessage when the handle was spawned without
// WithInbound.
var ErrNoInbound = errors.New("worker has no inbound message handler")

// InboundFunc handles a message posted to a worker. post sends a reply back to
// the owner's OnMessage handler; it must not be retained after the handler
// returns, since Release only waits for handlers that are still running.
type InboundFunc func(msg any, post func(reply any))

// OnMessage registers the owner-side handler invoked asynchronously for every
// reply the worker posts back. Replies posted before a handler is registered
// are dropped.
func (h *Handle[A, R]) OnMessage(handler func(msg any)) {
	h.mu.Lock()
	h.onMessage = handler
	h.mu.Unlock()
}

// PostMessage delivers msg to the worker's inbound handler on its own
// goroutine and returns without waiting. Delivery is unordered and does not
// interact with the task or its completion callback. Posting to a released
// handle returns a LifecycleError.
func (h *Handle[A, R]) PostMessage(msg any) error {
	h.mu.Lock()
	if h.state == Released {
		err := h.violation("post")
		h.mu.Unlock()
		return err
	}
	inbound := h.inbound
	if inbound == nil {
		h.mu.Unlock()
		return ErrNoInbound
	}
	h.inflight.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.inflight.Done()
		inbound(msg, h.postBack)
	}()
	return nil
}

func (h *Handle[A, R]) postBack(reply any) {
	h.mu.Lock()
	handler := h.onMessage
	if handler == nil {
		h.mu.Unlock()
		h.logger.Debug("worker reply dropped", logging.Int("worker", h.id))
		return
	}
	h.inflight.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.inflight.Done()
		handler(reply)
	}()
}
