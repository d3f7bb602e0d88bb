package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Database DatabaseConfig `yaml:"database"`
	Sessions SessionsConfig `yaml:"sessions"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Host         string          `yaml:"host"`
	Port         int             `yaml:"port"`
	ReadTimeout  time.Duration   `yaml:"read_timeout"`
	WriteTimeout time.Duration   `yaml:"write_timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles the whole API with a token bucket. Off by
// default; the service is meant for single-user or small deployments.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// CatalogConfig points at the JSON movie list. An empty path selects
// the built-in seed set.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SessionsConfig struct {
	TTL            time.Duration `yaml:"ttl"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
	SweepInterval  time.Duration `yaml:"sweep_interval"`
}

// CacheConfig sizes the browse response cache. Zero disables it.
type CacheConfig struct {
	BrowseEntries int `yaml:"browse_entries"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         6590,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: false,
				RPS:     50,
				Burst:   100,
			},
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Database: DatabaseConfig{
			Path: "data/favorites.db",
		},
		Sessions: SessionsConfig{
			TTL:            30 * time.Minute,
			SearchDebounce: 300 * time.Millisecond,
			SweepInterval:  5 * time.Minute,
		},
		Cache: CacheConfig{
			BrowseEntries: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Pretty: true,
		},
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
