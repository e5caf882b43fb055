package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/primebench/internal/errors"
)

func double(n int) (int, error) { return n * 2, nil }

// waitDone fails the test if h does not finish within a generous deadline.
func waitDone[A, R any](t *testing.T, h *Handle[A, R]) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("worker %d did not finish (state %s)", h.ID(), h.State())
	}
}

func TestHandle_HappyPath(t *testing.T) {
	t.Parallel()
	h := Spawn(double, 21)
	if h.State() != Created {
		t.Fatalf("new handle state = %s, want created", h.State())
	}
	if !h.Alive() {
		t.Error("a handle that has not finished should be alive")
	}

	var calls atomic.Int32
	var got int
	err := h.Dispatch(func(cb *Handle[int, int], arg, result int, err error) {
		calls.Add(1)
		if cb != h || arg != 21 || err != nil {
			t.Errorf("callback got handle=%p arg=%d err=%v", cb, arg, err)
		}
		got = result
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	waitDone(t, h)

	if calls.Load() != 1 {
		t.Errorf("callback invoked %d times, want 1", calls.Load())
	}
	if got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
	if h.State() != Completed || h.Alive() {
		t.Errorf("after Done: state=%s alive=%v", h.State(), h.Alive())
	}
	if r, err := h.Result(); r != 42 || err != nil {
		t.Errorf("Result() = %d, %v", r, err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if h.State() != Released {
		t.Errorf("state = %s, want released", h.State())
	}
}

// TestHandle_CallbackHappensBeforeDone checks that a write performed in the
// completion callback is visible once Done is closed.
func TestHandle_CallbackHappensBeforeDone(t *testing.T) {
	t.Parallel()
	for i := 0; i < 200; i++ {
		h := Spawn(double, i)
		written := false
		if err := h.Dispatch(func(*Handle[int, int], int, int, error) { written = true }); err != nil {
			t.Fatal(err)
		}
		<-h.Done()
		if !written {
			t.Fatalf("iteration %d: callback write not visible after Done", i)
		}
	}
}

func TestHandle_LifecycleViolations(t *testing.T) {
	t.Parallel()

	t.Run("release before dispatch", func(t *testing.T) {
		t.Parallel()
		h := Spawn(double, 1)
		assertViolation(t, h.Release(), "release", "created")
	})

	t.Run("release while running", func(t *testing.T) {
		t.Parallel()
		gate := make(chan struct{})
		h := Spawn(func(int) (int, error) { <-gate; return 0, nil }, 0)
		if err := h.Dispatch(nil); err != nil {
			t.Fatal(err)
		}
		assertViolation(t, h.Release(), "release", "running")
		close(gate)
		waitDone(t, h)
		if err := h.Release(); err != nil {
			t.Fatalf("Release after completion: %v", err)
		}
	})

	t.Run("release from inside the completion callback", func(t *testing.T) {
		t.Parallel()
		h := Spawn(double, 1)
		var inCallback error
		if err := h.Dispatch(func(self *Handle[int, int], _, _ int, _ error) {
			inCallback = self.Release()
		}); err != nil {
			t.Fatal(err)
		}
		waitDone(t, h)
		assertViolation(t, inCallback, "release", "running")
	})

	t.Run("double release", func(t *testing.T) {
		t.Parallel()
		h := Spawn(double, 1)
		if err := h.Dispatch(nil); err != nil {
			t.Fatal(err)
		}
		waitDone(t, h)
		if err := h.Release(); err != nil {
			t.Fatal(err)
		}
		assertViolation(t, h.Release(), "release", "released")
	})

	t.Run("double dispatch", func(t *testing.T) {
		t.Parallel()
		h := Spawn(double, 1)
		if err := h.Dispatch(nil); err != nil {
			t.Fatal(err)
		}
		assertViolation(t, h.Dispatch(nil), "dispatch", "")
		waitDone(t, h)
	})

	t.Run("dispatch after release", func(t *testing.T) {
		t.Parallel()
		h := Spawn(double, 1)
		if err := h.Dispatch(nil); err != nil {
			t.Fatal(err)
		}
		waitDone(t, h)
		if err := h.Release(); err != nil {
			t.Fatal(err)
		}
		assertViolation(t, h.Dispatch(nil), "dispatch", "released")
	})

	t.Run("result before completion", func(t *testing.T) {
		t.Parallel()
		h := Spawn(double, 1)
		_, err := h.Result()
		assertViolation(t, err, "read result", "created")
	})
}

// assertViolation checks err is a LifecycleError for op; an empty state skips
// the state check for races between running and completed.
func assertViolation(t *testing.T, err error, op, state string) {
	t.Helper()
	if !errors.Is(err, apperrors.ErrLifecycle) {
		t.Fatalf("expected lifecycle violation, got %v", err)
	}
	var le apperrors.LifecycleError
	if !errors.As(err, &le) {
		t.Fatalf("expected LifecycleError, got %T", err)
	}
	if le.Op != op {
		t.Errorf("Op = %q, want %q", le.Op, op)
	}
	if state != "" && le.State != state {
		t.Errorf("State = %q, want %q", le.State, state)
	}
}

func TestHandle_TaskErrorIsWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	h := Spawn(func(int) (int, error) { return 0, boom }, 0, WithID(7))

	var cbErr error
	if err := h.Dispatch(func(_ *Handle[int, int], _, _ int, err error) { cbErr = err }); err != nil {
		t.Fatal(err)
	}
	waitDone(t, h)

	var we apperrors.WorkerError
	if !errors.As(cbErr, &we) {
		t.Fatalf("expected WorkerError, got %v", cbErr)
	}
	if we.Worker != 7 || !errors.Is(cbErr, boom) {
		t.Errorf("unexpected worker error: %+v", we)
	}
}

func TestHandle_PanicIsRecovered(t *testing.T) {
	t.Parallel()
	h := Spawn(func(int) (int, error) { panic("kaboom") }, 0, WithID(3))

	var cbErr error
	if err := h.Dispatch(func(_ *Handle[int, int], _, _ int, err error) { cbErr = err }); err != nil {
		t.Fatal(err)
	}
	waitDone(t, h)

	var we apperrors.WorkerError
	if !errors.As(cbErr, &we) || we.Worker != 3 {
		t.Fatalf("expected WorkerError for worker 3, got %v", cbErr)
	}
	if h.State() != Completed {
		t.Errorf("state = %s, want completed", h.State())
	}
	if err := h.Release(); err != nil {
		t.Errorf("Release after panic: %v", err)
	}
}

func TestHandle_DefaultIDsAreUnique(t *testing.T) {
	t.Parallel()
	a, b := Spawn(double, 0), Spawn(double, 0)
	if a.ID() == b.ID() {
		t.Errorf("two handles share ID %d", a.ID())
	}
	if c := Spawn(double, 0, WithID(0)); c.ID() != 0 {
		t.Errorf("WithID(0) gave ID %d", c.ID())
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()
	tests := map[State]string{
		Created:   "created",
		Running:   "running",
		Completed: "completed",
		Released:  "released",
		State(9):  "state(9)",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int32(s), s.String(), want)
		}
	}
}
