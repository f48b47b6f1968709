package buffer

import "fmt"

// Config controls batch sizing and refill timing.
type Config struct {
	// BatchSize is the number of items requested per fetch.
	BatchSize int

	// LowWater is the unconsumed-item count at or below which a
	// background refill starts.
	LowWater int
}

// DefaultConfig returns the standard prefetch settings.
func DefaultConfig() Config {
	return Config{
		BatchSize: 3,
		LowWater:  1,
	}
}

// Validate checks the config for errors.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.LowWater < 0 {
		return fmt.Errorf("low-water mark must not be negative, got %d", c.LowWater)
	}
	return nil
}
