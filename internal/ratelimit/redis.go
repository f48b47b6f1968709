package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

//go:embed sliding_window.lua
var slidingWindowScript string

var slidingWindow = redis.NewScript(slidingWindowScript)

// RedisWindow is a sliding-window limiter whose window lives in a Redis
// sorted set, shared by every process pointing at the same key. The
// evict/count/record cycle runs atomically in a Lua script.
type RedisWindow struct {
	client *redis.Client
	key    string
	max    int
	window time.Duration
	margin time.Duration
	clock  Clock
	logger *slog.Logger
}

// NewRedisWindow verifies the connection and returns a limiter using cfg's
// budget and key.
func NewRedisWindow(ctx context.Context, client *redis.Client, cfg Config, opts ...Option) (*RedisWindow, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	o := buildOptions(opts)
	key := cfg.Redis.Key
	if key == "" {
		key = DefaultConfig().Redis.Key
	}

	return &RedisWindow{
		client: client,
		key:    key,
		max:    cfg.MaxRequests,
		window: cfg.Window,
		margin: cfg.Margin,
		clock:  o.clock,
		logger: o.logger,
	}, nil
}

// Acquire implements Limiter.
func (r *RedisWindow) Acquire(ctx context.Context) error {
	member := uuid.NewString()
	for {
		now := r.clock.Now()
		waitMs, err := slidingWindow.Run(ctx, r.client, []string{r.key},
			now.UnixMilli(),
			r.window.Milliseconds(),
			r.max,
			member,
		).Int64()
		if err != nil {
			return fmt.Errorf("redis rate limit: %w", err)
		}
		if waitMs < 0 {
			return nil
		}

		wait := time.Duration(waitMs)*time.Millisecond + r.margin
		r.logger.Info("shared rate limit reached, waiting",
			"key", r.key,
			"limit", r.max,
			"wait", wait,
		)
		if err := r.clock.Sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// Len returns the number of requests recorded in the current window.
func (r *RedisWindow) Len(ctx context.Context) (int, error) {
	from := fmt.Sprintf("(%d", r.clock.Now().Add(-r.window).UnixMilli())
	n, err := r.client.ZCount(ctx, r.key, from, "+inf").Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
