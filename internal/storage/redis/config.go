package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings; zero means the key never expires
	GuestCoachTTL time.Duration
	LineupTTL     time.Duration
	SnapshotTTL   time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:           "redis://localhost:6379",
		PoolSize:      10,
		MinIdleConns:  2,
		GuestCoachTTL: 24 * time.Hour,
		LineupTTL:     30 * 24 * time.Hour,
		SnapshotTTL:   0,
	}
}
