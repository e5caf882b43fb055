package worker

import "github.com/agbru/primebench/internal/logging"

// Option configures a handle at spawn time.
type Option func(*options)

type options struct {
	id        int
	logger    logging.Logger
	inbound   InboundFunc
	onRelease func()
}

// WithID sets the handle identifier reported in logs and errors.
// Without it handles get a process-wide increasing ID.
func WithID(id int) Option {
	return func(o *options) { o.id = id }
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithInbound registers the worker-side handler for PostMessage.
func WithInbound(fn InboundFunc) Option {
	return func(o *options) { o.inbound = fn }
}

// withReleaseHook runs fn after a successful Release.
func withReleaseHook(fn func()) Option {
	return func(o *options) { o.onRelease = fn }
}
