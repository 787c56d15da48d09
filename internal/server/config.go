package server

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/anchorsmith/anchorsmith/pkg/cache"
)

// Default request limits. Zero in the config keeps the default; -1
// disables the limit.
const (
	DefaultMaxNodes = 500
	DefaultMaxEdges = 2000
)

// Config holds the HTTP server configuration, loaded from a TOML file.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// MaxNodes and MaxEdges bound accepted graph sizes.
	MaxNodes int `toml:"max_nodes"`
	MaxEdges int `toml:"max_edges"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none". Empty means "file".
	Backend string `toml:"backend"`

	// Dir is the directory for the file backend. Empty means a
	// temporary directory.
	Dir string `toml:"dir"`

	// Scope prefixes all cache keys, isolating deployments that share
	// a Redis instance.
	Scope string `toml:"scope"`

	Redis cache.RedisConfig `toml:"redis"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		MaxNodes: DefaultMaxNodes,
		MaxEdges: DefaultMaxEdges,
		Cache:    CacheConfig{Backend: "file"},
	}
}

// LoadConfig reads a TOML config file and fills unset fields with
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxNodes == 0 {
		c.MaxNodes = DefaultMaxNodes
	}
	if c.MaxEdges == 0 {
		c.MaxEdges = DefaultMaxEdges
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "file"
	}
}

// maxNodes returns the node limit with -1 meaning unlimited.
func (c Config) maxNodes() int {
	if c.MaxNodes < 0 {
		return 0
	}
	return c.MaxNodes
}

func (c Config) maxEdges() int {
	if c.MaxEdges < 0 {
		return 0
	}
	return c.MaxEdges
}
