// Package ratelimit bounds outbound generation requests to a fixed budget per
// rolling time window.
//
// The backend quota is global to the API key, so a single limiter is built at
// startup and shared by every generation client. Window keeps the rolling
// window in process memory; RedisWindow keeps it in Redis so that several
// processes using the same key share one budget.
package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Limiter gates outbound requests. Acquire blocks until the caller may issue
// one request and records it. It fails only when ctx is done.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Option configures a Window or RedisWindow.
type Option func(*options)

type options struct {
	clock  Clock
	logger *slog.Logger
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger used for throttling diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:  realClock{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Window is an in-process sliding-window limiter. The zero value is not
// usable; construct with NewWindow.
type Window struct {
	max    int
	window time.Duration
	margin time.Duration
	clock  Clock
	logger *slog.Logger

	mu     sync.Mutex
	stamps []time.Time // ascending; all within window of the last read
}

// NewWindow creates a limiter allowing at most max requests per window.
// margin is added to every computed wait so the oldest entry has definitely
// left the window when the caller wakes.
func NewWindow(max int, window, margin time.Duration, opts ...Option) *Window {
	o := buildOptions(opts)
	return &Window{
		max:    max,
		window: window,
		margin: margin,
		clock:  o.clock,
		logger: o.logger,
	}
}

// Acquire implements Limiter.
func (w *Window) Acquire(ctx context.Context) error {
	for {
		wait, ok := w.tryRecord()
		if ok {
			return nil
		}

		w.logger.Info("rate limit reached, waiting",
			"limit", w.max,
			"window", w.window,
			"wait", wait,
		)
		if err := w.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// tryRecord evicts stale entries and records a request if the window has
// room. Otherwise it returns how long until the oldest entry expires.
func (w *Window) tryRecord() (time.Duration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	w.evict(now)

	if len(w.stamps) < w.max {
		w.stamps = append(w.stamps, now)
		return 0, true
	}

	wait := w.window - now.Sub(w.stamps[0]) + w.margin
	if wait <= 0 {
		// An entry exactly window old still counts.
		wait = time.Millisecond
	}
	return wait, false
}

func (w *Window) evict(now time.Time) {
	i := 0
	for i < len(w.stamps) && now.Sub(w.stamps[i]) > w.window {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

// Len returns the number of requests recorded in the current window.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evict(w.clock.Now())
	return len(w.stamps)
}

// Max returns the configured request budget per window.
func (w *Window) Max() int {
	return w.max
}
