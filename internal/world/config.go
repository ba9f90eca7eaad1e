package world

import "strings"

const (
	DefaultSeed   = "prototype"
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Config describes the deterministic world layout. The same config
// always produces the same obstacles and agent spawns.
type Config struct {
	Seed           string  `json:"seed" yaml:"seed"`
	Width          float64 `json:"width" yaml:"width"`
	Height         float64 `json:"height" yaml:"height"`
	Obstacles      bool    `json:"obstacles" yaml:"obstacles"`
	ObstaclesCount int     `json:"obstaclesCount" yaml:"obstaclesCount"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.ObstaclesCount < 0 {
		normalized.ObstaclesCount = 0
	}
	if normalized.Width <= 0 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height <= 0 {
		normalized.Height = DefaultHeight
	}
	return normalized
}

// Normalized returns the config with defaults applied.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

// DefaultConfig returns the baseline world configuration.
func DefaultConfig() Config {
	return Config{
		Seed:   DefaultSeed,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}
