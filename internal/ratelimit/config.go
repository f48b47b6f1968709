package ratelimit

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds limiter configuration.
type Config struct {
	// MaxRequests is the budget per Window. The default stays one below the
	// Gemini free-tier cap of 15 requests per minute.
	MaxRequests int

	Window time.Duration
	Margin time.Duration

	Redis RedisConfig
}

// RedisConfig enables the shared Redis window when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxRequests: 14,
		Window:      time.Minute,
		Margin:      500 * time.Millisecond,
		Redis: RedisConfig{
			Key: "catprep:ratelimit:generate",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CATPREP_MAX_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRequests = n
		}
	}
	if a := os.Getenv("CATPREP_REDIS_ADDR"); a != "" {
		cfg.Redis.Addr = a
	}
	if p := os.Getenv("CATPREP_REDIS_PASSWORD"); p != "" {
		cfg.Redis.Password = p
	}
	if v := os.Getenv("CATPREP_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}

	return cfg
}

// Validate checks the budget and window are usable.
func (c Config) Validate() error {
	if c.MaxRequests < 1 {
		return fmt.Errorf("CATPREP_MAX_RPM must be at least 1, got %d", c.MaxRequests)
	}
	if c.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}
	if c.Margin < 0 {
		return fmt.Errorf("rate limit margin must not be negative")
	}
	return nil
}

// New builds the limiter described by cfg. The returned close function
// releases the Redis connection, if any.
func New(ctx context.Context, cfg Config, opts ...Option) (Limiter, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if cfg.Redis.Addr == "" {
		w := NewWindow(cfg.MaxRequests, cfg.Window, cfg.Margin, opts...)
		return w, func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rw, err := NewRedisWindow(ctx, client, cfg, opts...)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis rate limiter: %w", err)
	}
	return rw, client.Close, nil
}
