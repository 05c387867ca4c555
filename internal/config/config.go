// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; file and env layers override them in Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory profile update queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the profile store.
	ShardCount int `koanf:"shard_count"`

	// MaxMatchLimit caps the limit parameter on match endpoints.
	MaxMatchLimit int `koanf:"max_match_limit"`

	// Teammate scoring weights. Skills and interests scale overlap
	// fractions; level and rating are decayed bonus caps.
	PeerSkillWeight    float64 `koanf:"peer_skill_weight"`
	PeerInterestWeight float64 `koanf:"peer_interest_weight"`
	PeerLevelWeight    float64 `koanf:"peer_level_weight"`
	PeerRatingWeight   float64 `koanf:"peer_rating_weight"`

	// Candidate scoring weights.
	HiringSkillWeight      float64 `koanf:"hiring_skill_weight"`
	HiringDomainWeight     float64 `koanf:"hiring_domain_weight"`
	HiringExperienceWeight float64 `koanf:"hiring_experience_weight"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		QueueSize:     100_000,
		WorkerCount:   runtime.NumCPU() * 2,
		DedupeSize:    500_000,
		ShardCount:    16,
		MaxMatchLimit: 100,

		PeerSkillWeight:    45,
		PeerInterestWeight: 25,
		PeerLevelWeight:    15,
		PeerRatingWeight:   15,

		HiringSkillWeight:      65,
		HiringDomainWeight:     20,
		HiringExperienceWeight: 15,
	}
}
