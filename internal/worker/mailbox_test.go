package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/agbru/primebench/internal/errors"
)

func echo(msg any, post func(any)) { post(msg) }

func TestMailbox_EchoRoundTrip(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	h := Spawn(func(int) (int, error) { <-gate; return 0, nil }, 0, WithInbound(echo))

	replies := make(chan any, 1)
	h.OnMessage(func(msg any) { replies <- msg })

	if err := h.Dispatch(nil); err != nil {
		t.Fatal(err)
	}
	if err := h.PostMessage("ping"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	select {
	case got := <-replies:
		if got != "ping" {
			t.Errorf("reply = %v, want ping", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reply received")
	}

	close(gate)
	waitDone(t, h)
	if err := h.Release(); err != nil {
		t.Fatal(err)
	}
}

// TestMailbox_IndependentOfCompletion posts to a handle that is never
// dispatched: the message path does not depend on the task.
func TestMailbox_IndependentOfCompletion(t *testing.T) {
	t.Parallel()
	h := Spawn(double, 0, WithInbound(echo))
	replies := make(chan any, 1)
	h.OnMessage(func(msg any) { replies <- msg })

	if err := h.PostMessage(5); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-replies:
		if got != 5 {
			t.Errorf("reply = %v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reply received")
	}
	if h.State() != Created {
		t.Errorf("messaging changed state to %s", h.State())
	}
}

func TestMailbox_NoInbound(t *testing.T) {
	t.Parallel()
	h := Spawn(double, 0)
	if err := h.PostMessage("x"); !errors.Is(err, ErrNoInbound) {
		t.Errorf("expected ErrNoInbound, got %v", err)
	}
}

func TestMailbox_PostAfterRelease(t *testing.T) {
	t.Parallel()
	h := Spawn(double, 0, WithInbound(echo))
	if err := h.Dispatch(nil); err != nil {
		t.Fatal(err)
	}
	waitDone(t, h)
	if err := h.Release(); err != nil {
		t.Fatal(err)
	}
	if err := h.PostMessage("late"); !errors.Is(err, apperrors.ErrLifecycle) {
		t.Errorf("expected lifecycle violation, got %v", err)
	}
}

func TestMailbox_ReplyWithoutHandlerIsDropped(t *testing.T) {
	t.Parallel()
	handled := make(chan struct{})
	h := Spawn(double, 0, WithInbound(func(msg any, post func(any)) {
		post(msg)
		close(handled)
	}))
	if err := h.PostMessage("x"); err != nil {
		t.Fatal(err)
	}
	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("inbound handler never ran")
	}
}

// TestMailbox_ReleaseWaitsForHandlers checks that Release returns only after
// inbound and reply handlers still running have finished.
func TestMailbox_ReleaseWaitsForHandlers(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	var finished atomic.Bool
	h := Spawn(double, 0, WithInbound(func(msg any, post func(any)) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		post(msg)
	}))
	h.OnMessage(func(any) {
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})

	if err := h.Dispatch(nil); err != nil {
		t.Fatal(err)
	}
	if err := h.PostMessage("slow"); err != nil {
		t.Fatal(err)
	}
	<-started
	waitDone(t, h)

	if err := h.Release(); err != nil {
		t.Fatal(err)
	}
	if !finished.Load() {
		t.Error("Release returned before the reply handler finished")
	}
}
