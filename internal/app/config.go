package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hollowvale/server/internal/world"
)

// BotSpec declares one bot to spawn at startup.
type BotSpec struct {
	ID        string     `yaml:"id"`
	Archetype string     `yaml:"archetype"`
	X         float64    `yaml:"x"`
	Y         float64    `yaml:"y"`
	Mode      string     `yaml:"mode"` // "path" or "pursuit"
	Target    string     `yaml:"target"`
	Waypoints []Waypoint `yaml:"waypoints"`
}

// Waypoint is a patrol node for path-mode bots.
type Waypoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoggingSpec selects sinks without exposing the full router config.
type LoggingSpec struct {
	Sinks    []string `yaml:"sinks"`
	JSONPath string   `yaml:"jsonPath"`
	Debug    bool     `yaml:"debug"`
}

// Config is the server bootstrap file.
type Config struct {
	Addr         string       `yaml:"addr"`
	TickRate     int          `yaml:"tickRate"`
	CatalogPaths []string     `yaml:"catalogPaths"`
	World        world.Config `yaml:"world"`
	Bots         []BotSpec    `yaml:"bots"`
	Players      []string     `yaml:"players"`
	Logging      LoggingSpec  `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		TickRate:     15,
		CatalogPaths: []string{"config/steering/archetypes.json"},
		World:        world.DefaultConfig(),
		Logging:      LoggingSpec{Sinks: []string{"console"}},
	}
}

// LoadConfig reads a YAML bootstrap file, layering it over defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, errors.New("config path cannot be empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 15
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg, nil
}
