package orchestration

import (
	"context"

	"github.com/agbru/primebench/internal/logging"
	"github.com/agbru/primebench/internal/worker"
)

// echo posts every message straight back to the owner.
func echo(msg any, post func(any)) { post(msg) }

// idle keeps a worker alive until stop is closed.
func idle(stop <-chan struct{}) (struct{}, error) {
	<-stop
	return struct{}{}, nil
}

// Exchange performs the one-off message round trip: it starts a long-lived
// echo worker, posts payload to it and waits for the reply on the owner side.
// The worker is stopped and released before Exchange returns. It uses its own
// handlers and never touches the benchmark's completion path.
func Exchange(ctx context.Context, payload any, logger logging.Logger) (any, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	stop := make(chan struct{})
	h := worker.Spawn(idle, (<-chan struct{})(stop), worker.WithInbound(echo), worker.WithLogger(logger))

	replies := make(chan any, 1)
	h.OnMessage(func(msg any) {
		select {
		case replies <- msg:
		default:
		}
	})

	if err := h.Dispatch(nil); err != nil {
		close(stop)
		return nil, err
	}
	defer func() {
		close(stop)
		<-h.Done()
		if err := h.Release(); err != nil {
			logger.Warn("exchange worker release failed", logging.Err(err))
		}
	}()

	if err := h.PostMessage(payload); err != nil {
		return nil, err
	}
	logger.Debug("message posted", logging.Int("worker", h.ID()))

	select {
	case reply := <-replies:
		logger.Debug("reply received", logging.Int("worker", h.ID()))
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
