// Package session runs one timed exam attempt: a polled countdown over the
// slot's [start, end] window with a hard deadline and forced submission.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alphaquiz/monthlyquiz/internal/quizbank"
)

// State of the attempt relative to the slot window.
type State string

const (
	StatePending State = "pending" // now < start
	StateRunning State = "running" // start <= now <= end
	StateExpired State = "expired" // now > end
)

var (
	ErrNotRunning       = errors.New("session: exam is not running")
	ErrAlreadySubmitted = errors.New("session: attempt already submitted")
)

// SubmitFunc sends the collected answers exactly once per attempt.
type SubmitFunc func(ctx context.Context, ans quizbank.Answers, auto bool) error

// AnswersFunc reads the current answer state at submission time.
type AnswersFunc func() quizbank.Answers

// TickFunc observes countdown updates for display.
type TickFunc func(s State, remaining time.Duration)

// Controller drives one attempt. The poll interval bounds display error;
// the submitted guard is flipped under the lock before any network call so
// the timer and a manual submit can never both send.
type Controller struct {
	start, end time.Time

	now      func() time.Time
	interval time.Duration
	onTick   TickFunc
	answers  AnswersFunc
	submit   SubmitFunc

	mu        sync.Mutex
	submitted bool
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

func WithOnTick(fn TickFunc) Option {
	return func(c *Controller) { c.onTick = fn }
}

func New(start, end time.Time, answers AnswersFunc, submit SubmitFunc, opts ...Option) *Controller {
	c := &Controller{
		start:    start,
		end:      end,
		now:      time.Now,
		interval: 500 * time.Millisecond,
		onTick:   func(State, time.Duration) {},
		answers:  answers,
		submit:   submit,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// State derives the attempt state at the current instant.
func (c *Controller) State() State {
	now := c.now()
	switch {
	case now.Before(c.start):
		return StatePending
	case now.After(c.end):
		return StateExpired
	default:
		return StateRunning
	}
}

// Run polls until the attempt ends: context cancelled, manual submission
// observed, or the deadline reached. Crossing the deadline forces an
// auto-submit of whatever is answered so far, even when the poll loop was
// suspended past the exact zero-crossing (a backgrounded client must not
// silently drop its attempt).
func (c *Controller) Run(ctx context.Context) error {
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if c.done() {
				return nil
			}
			now := c.now()
			switch {
			case now.Before(c.start):
				c.onTick(StatePending, c.start.Sub(now))
			case now.Before(c.end):
				c.onTick(StateRunning, c.end.Sub(now))
			default:
				return c.expire(ctx)
			}
		}
	}
}

// ManualSubmit sends the current answers, allowed only while running and
// only if nothing has been sent yet.
func (c *Controller) ManualSubmit(ctx context.Context) error {
	now := c.now()
	if now.Before(c.start) || now.After(c.end) {
		return ErrNotRunning
	}
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}
	c.submitted = true
	c.mu.Unlock()
	return c.submit(ctx, c.answers(), false)
}

func (c *Controller) done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

func (c *Controller) expire(ctx context.Context) error {
	c.onTick(StateExpired, 0)
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return nil
	}
	c.submitted = true
	c.mu.Unlock()
	if err := c.submit(ctx, c.answers(), true); err != nil {
		return fmt.Errorf("auto-submit: %w", err)
	}
	return nil
}

// FormatClock renders a remaining duration as mm:ss, floored at zero.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
