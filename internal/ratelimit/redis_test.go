package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestRedisWindow_Integration(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test: Redis not available (%v)", err)
	}

	cfg := DefaultConfig()
	cfg.MaxRequests = 2
	cfg.Margin = 0
	cfg.Redis.Key = fmt.Sprintf("catprep:test:%d", time.Now().UnixNano())
	defer client.Del(context.Background(), cfg.Redis.Key)

	clock := newFakeClock()
	clock.now = time.Now()

	w, err := NewRedisWindow(ctx, client, cfg, WithClock(clock))
	if err != nil {
		t.Fatalf("NewRedisWindow: %v", err)
	}

	for i := range 2 {
		if err := w.Acquire(ctx); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if len(clock.slept) != 0 {
		t.Fatalf("expected no wait for first two calls, got %v", clock.slept)
	}

	n, err := w.Len(ctx)
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}

	if err := w.Acquire(ctx); err != nil {
		t.Fatalf("third acquire: %v", err)
	}
	if len(clock.slept) != 1 {
		t.Fatalf("expected third call to wait once, got %v", clock.slept)
	}
	if clock.slept[0] < 59*time.Second || clock.slept[0] > 61*time.Second {
		t.Errorf("expected wait close to a full window, got %s", clock.slept[0])
	}
}
