package worker

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/agbru/primebench/internal/errors"
	"github.com/agbru/primebench/internal/logging"
)

// Spawner caps the number of live workers. A slot is held from spawn until
// the handle is released.
type Spawner struct {
	sem      *semaphore.Weighted
	capacity int64
	inUse    atomic.Int64
	logger   logging.Logger
}

// NewSpawner returns a spawner allowing at most capacity live workers.
func NewSpawner(capacity int, logger logging.Logger) *Spawner {
	if capacity < 1 {
		capacity = 1
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Spawner{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
		logger:   logger,
	}
}

// Capacity returns the maximum number of live workers.
func (s *Spawner) Capacity() int { return int(s.capacity) }

// Available returns the number of free slots. It is a snapshot.
func (s *Spawner) Available() int { return int(s.capacity - s.inUse.Load()) }

// SpawnAll spawns one handle per argument, with IDs matching argument indices.
// All slots are reserved at once: if they cannot be, it returns an
// apperrors.SpawnError and spawns nothing.
func SpawnAll[A, R any](s *Spawner, task Task[A, R], args []A, opts ...Option) ([]*Handle[A, R], error) {
	n := int64(len(args))
	if n == 0 {
		return nil, nil
	}
	if !s.sem.TryAcquire(n) {
		err := apperrors.SpawnError{Requested: len(args), Available: s.Available()}
		s.logger.Warn("spawn refused", logging.Int("requested", len(args)), logging.Int("available", err.Available))
		return nil, err
	}
	s.inUse.Add(n)

	handles := make([]*Handle[A, R], len(args))
	for i, arg := range args {
		hopts := make([]Option, 0, len(opts)+3)
		hopts = append(hopts, WithLogger(s.logger))
		hopts = append(hopts, opts...)
		hopts = append(hopts, WithID(i), withReleaseHook(s.release))
		handles[i] = Spawn(task, arg, hopts...)
	}
	s.logger.Debug("workers spawned", logging.Int("count", len(args)))
	return handles, nil
}

func (s *Spawner) release() {
	s.inUse.Add(-1)
	s.sem.Release(1)
}
