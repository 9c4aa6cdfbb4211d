// Package config defines service configuration structures and loading hooks.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FrameQueueSize bounds the in-memory observation queue.
	FrameQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the frame-id deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxRankingLimit caps GET /rankings?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// Sport selects the scoring profile: pickleball, tennis, badminton.
	Sport string `koanf:"sport"`

	// BaseWeights overrides the per-metric fusion weights. Empty means the
	// built-in defaults; a non-empty map must sum to 1.0.
	BaseWeights map[string]float64 `koanf:"base_weights"`

	// Modifiers overrides the sport's per-metric multipliers.
	Modifiers map[string]float64 `koanf:"modifiers"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		FrameQueueSize:  100_000,
		WorkerCount:     runtime.NumCPU() * 4,
		DedupeSize:      50_000,
		MaxRankingLimit: 1000,
		Sport:           "pickleball",
	}
}
