package ratelimit

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances virtual time when slept on.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestWindow_ThirdCallWaitsForOldest(t *testing.T) {
	clock := newFakeClock()
	w := NewWindow(2, time.Minute, 500*time.Millisecond, WithClock(clock))
	ctx := context.Background()

	require.NoError(t, w.Acquire(ctx))
	clock.Advance(10 * time.Second)
	require.NoError(t, w.Acquire(ctx))
	assert.Empty(t, clock.slept, "first two calls must not wait")

	require.NoError(t, w.Acquire(ctx))
	require.Len(t, clock.slept, 1)
	// Oldest entry is 10s old: 60s - 10s + margin.
	assert.Equal(t, 50*time.Second+500*time.Millisecond, clock.slept[0])
	assert.Equal(t, 2, w.Len())
}

func TestWindow_StaleEntriesEvicted(t *testing.T) {
	clock := newFakeClock()
	w := NewWindow(3, time.Minute, 0, WithClock(clock))
	ctx := context.Background()

	for range 3 {
		require.NoError(t, w.Acquire(ctx))
	}
	assert.Equal(t, 3, w.Len())

	clock.Advance(61 * time.Second)
	assert.Equal(t, 0, w.Len())

	require.NoError(t, w.Acquire(ctx))
	assert.Empty(t, clock.slept)
}

func TestWindow_NeverExceedsLimitInAnyWindow(t *testing.T) {
	const limit = 4
	clock := newFakeClock()
	w := NewWindow(limit, time.Minute, 500*time.Millisecond, WithClock(clock))
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(1, 2))

	var stamps []time.Time
	for range 60 {
		clock.Advance(time.Duration(rng.IntN(20)) * time.Second)
		before := clock.Now()
		require.NoError(t, w.Acquire(ctx))
		at := clock.Now()
		stamps = append(stamps, at)

		// A delayed call must have waited at least until the oldest
		// in-window entry aged out.
		if at.After(before) {
			var inWindow []time.Time
			for _, s := range stamps[:len(stamps)-1] {
				if before.Sub(s) <= time.Minute {
					inWindow = append(inWindow, s)
				}
			}
			require.Len(t, inWindow, limit)
			assert.GreaterOrEqual(t, at.Sub(before), time.Minute-before.Sub(inWindow[0]))
		}
	}

	for i, end := range stamps {
		count := 0
		for _, s := range stamps[:i+1] {
			if end.Sub(s) <= time.Minute {
				count++
			}
		}
		assert.LessOrEqual(t, count, limit, "window ending at call %d", i)
	}
}

func TestWindow_ConcurrentCallersShareBudget(t *testing.T) {
	clock := newFakeClock()
	w := NewWindow(5, time.Minute, 0, WithClock(clock))
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Acquire(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, w.Len())
	assert.Empty(t, clock.slept)
}

func TestWindow_CancelledWhileWaiting(t *testing.T) {
	w := NewWindow(1, time.Minute, 0)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, w.Acquire(ctx))

	done := make(chan error, 1)
	go func() { done <- w.Acquire(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Acquire did not return after cancel")
	}
	assert.Equal(t, 1, w.Len())
}

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 14, cfg.MaxRequests)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, 500*time.Millisecond, cfg.Margin)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CATPREP_MAX_RPM", "9")
	t.Setenv("CATPREP_REDIS_ADDR", "redis:6379")
	t.Setenv("CATPREP_REDIS_DB", "2")

	cfg := ConfigFromEnv()
	assert.Equal(t, 9, cfg.MaxRequests)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestConfig_ValidateRejectsZeroBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRequests = 0
	assert.Error(t, cfg.Validate())
}

func TestNew_InMemoryWithoutRedis(t *testing.T) {
	l, closeFn, err := New(context.Background(), DefaultConfig())
	require.NoError(t, err)
	defer closeFn()

	w, ok := l.(*Window)
	require.True(t, ok, "expected *Window, got %T", l)
	assert.Equal(t, 14, w.Max())
}
