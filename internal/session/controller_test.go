package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type submitCall struct {
	ans  quizbank.Answers
	auto bool
}

func newController(clock *fakeClock, start, end time.Time, calls chan submitCall) *Controller {
	answers := func() quizbank.Answers { return quizbank.Answers{"q1": 2} }
	submit := func(_ context.Context, ans quizbank.Answers, auto bool) error {
		calls <- submitCall{ans: ans, auto: auto}
		return nil
	}
	return New(start, end, answers, submit,
		WithClock(clock.now),
		WithInterval(time.Millisecond),
	)
}

func waitCall(t *testing.T, calls chan submitCall) submitCall {
	t.Helper()
	select {
	case c := <-calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no submission observed")
		return submitCall{}
	}
}

func waitDone(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestAutoSubmitAtDeadline(t *testing.T) {
	start := time.Date(2025, 3, 25, 15, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	clock := &fakeClock{t: start.Add(10 * time.Minute)}
	calls := make(chan submitCall, 4)
	ctrl := newController(clock, start, end, calls)

	done := make(chan error, 1)
	go func() { done <- ctrl.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond) // a few running ticks
	clock.set(end.Add(time.Second))

	call := waitCall(t, calls)
	if !call.auto {
		t.Error("deadline submission not tagged auto")
	}
	if call.ans["q1"] != 2 {
		t.Errorf("answers not collected at deadline: %v", call.ans)
	}
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
	select {
	case <-calls:
		t.Fatal("more than one submission sent")
	default:
	}
	if err := ctrl.ManualSubmit(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("manual submit after deadline: %v, want ErrNotRunning", err)
	}
}

func TestLateDetectionStillAutoSubmits(t *testing.T) {
	// The poll loop wakes up after the deadline has already passed, e.g. a
	// suspended client. The attempt must still be sent.
	start := time.Date(2025, 3, 25, 15, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	clock := &fakeClock{t: end.Add(3 * time.Minute)}
	calls := make(chan submitCall, 4)
	ctrl := newController(clock, start, end, calls)

	done := make(chan error, 1)
	go func() { done <- ctrl.Run(context.Background()) }()

	if call := waitCall(t, calls); !call.auto {
		t.Error("late submission not tagged auto")
	}
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestManualSubmitOnlyWhileRunning(t *testing.T) {
	start := time.Date(2025, 3, 25, 15, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	clock := &fakeClock{t: start.Add(-time.Hour)}
	calls := make(chan submitCall, 4)
	ctrl := newController(clock, start, end, calls)

	if err := ctrl.ManualSubmit(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("before start: %v, want ErrNotRunning", err)
	}

	clock.set(start.Add(5 * time.Minute))
	if err := ctrl.ManualSubmit(context.Background()); err != nil {
		t.Fatalf("during window: %v", err)
	}
	if call := waitCall(t, calls); call.auto {
		t.Error("manual submission tagged auto")
	}
	if err := ctrl.ManualSubmit(context.Background()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second submit: %v, want ErrAlreadySubmitted", err)
	}
}

func TestRunStopsAfterManualSubmit(t *testing.T) {
	start := time.Date(2025, 3, 25, 15, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	clock := &fakeClock{t: start.Add(time.Minute)}
	calls := make(chan submitCall, 4)
	ctrl := newController(clock, start, end, calls)

	done := make(chan error, 1)
	go func() { done <- ctrl.Run(context.Background()) }()

	if err := ctrl.ManualSubmit(context.Background()); err != nil {
		t.Fatalf("manual submit: %v", err)
	}
	waitCall(t, calls)
	if err := waitDone(t, done); err != nil {
		t.Fatalf("Run after manual submit: %v", err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	start := time.Date(2025, 3, 25, 15, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start.Add(time.Minute)}
	calls := make(chan submitCall, 4)
	ctrl := newController(clock, start, start.Add(30*time.Minute), calls)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()
	cancel()

	if err := waitDone(t, done); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run: %v, want context.Canceled", err)
	}
	select {
	case <-calls:
		t.Fatal("cancellation must not submit")
	default:
	}
}

func TestStateDerivation(t *testing.T) {
	start := time.Date(2025, 3, 25, 15, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	clock := &fakeClock{}
	ctrl := newController(clock, start, end, make(chan submitCall, 1))

	cases := []struct {
		at   time.Time
		want State
	}{
		{start.Add(-time.Second), StatePending},
		{start, StateRunning},
		{end, StateRunning},
		{end.Add(time.Second), StateExpired},
	}
	for _, c := range cases {
		clock.set(c.at)
		if got := ctrl.State(); got != c.want {
			t.Errorf("State at %v = %s, want %s", c.at, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-5 * time.Second, "00:00"},
		{90 * time.Second, "01:30"},
		{25 * time.Minute, "25:00"},
	}
	for _, c := range cases {
		if got := FormatClock(c.d); got != c.want {
			t.Errorf("FormatClock(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
