// Package config loads the server configuration from YAML with environment
// overrides
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/pokedex-api/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// Config is the full server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	PokeAPI  PokeAPIConfig  `yaml:"pokeapi"`
	Loader   LoaderConfig   `yaml:"loader"`
	Redis    RedisConfig    `yaml:"redis"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the gRPC listener
type ServerConfig struct {
	Port            int    `yaml:"port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// PokeAPIConfig configures the remote data source
type PokeAPIConfig struct {
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`

	// Language of descriptions and trigger labels
	Language string `yaml:"language"`
}

// LoaderConfig configures the batch loader
type LoaderConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// RedisConfig selects Redis-backed repositories when Addr is set
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	UseTLS   bool   `yaml:"use_tls"`

	// ChainTTL of cached evolution chains; empty or "0s" keeps them forever
	ChainTTL string `yaml:"chain_ttl"`
}

// SessionsConfig configures viewer sessions
type SessionsConfig struct {
	TTL string `yaml:"ttl"`
}

// LoggingConfig configures the process logger
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            50051,
			ShutdownTimeout: "30s",
		},
		PokeAPI: PokeAPIConfig{
			BaseURL:   pokeapi.DefaultBaseURL,
			Timeout:   "30s",
			UserAgent: "pokedex-api",
			Language:  pokeapi.DefaultLanguage,
		},
		Loader: LoaderConfig{
			BatchSize: 50,
		},
		Sessions: SessionsConfig{
			TTL: "1h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("POKEDEX_REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if password := os.Getenv("POKEDEX_REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if url := os.Getenv("POKEDEX_POKEAPI_URL"); url != "" {
		c.PokeAPI.BaseURL = url
	}
	if lang := os.Getenv("POKEDEX_LANGUAGE"); lang != "" {
		c.PokeAPI.Language = lang
	}
	if level := os.Getenv("POKEDEX_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if port := os.Getenv("POKEDEX_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
}

// Validate checks ranges, enums and duration strings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	errors.ValidateRange("loader.batch_size", c.Loader.BatchSize, 1, 1000, vb)
	errors.ValidateRequired("pokeapi.base_url", c.PokeAPI.BaseURL, vb)
	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "console"}, vb)

	validateDuration("server.shutdown_timeout", c.Server.ShutdownTimeout, vb)
	validateDuration("pokeapi.timeout", c.PokeAPI.Timeout, vb)
	validateDuration("redis.chain_ttl", c.Redis.ChainTTL, vb)
	validateDuration("sessions.ttl", c.Sessions.TTL, vb)

	return vb.Build()
}

func validateDuration(field, value string, vb *errors.ValidationBuilder) {
	if value == "" {
		return
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		vb.Fieldf(field, "invalid duration %q", value)
		return
	}
	if d < 0 {
		vb.Field(field, "cannot be negative")
	}
}

// GetShutdownTimeout returns the graceful stop timeout
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 30*time.Second)
}

// GetPokeAPITimeout returns the HTTP timeout of the data source client
func (c *Config) GetPokeAPITimeout() time.Duration {
	return parseDuration(c.PokeAPI.Timeout, 30*time.Second)
}

// GetChainTTL returns the evolution chain TTL; 0 means no expiry
func (c *Config) GetChainTTL() time.Duration {
	return parseDuration(c.Redis.ChainTTL, 0)
}

// GetSessionTTL returns the viewer session TTL
func (c *Config) GetSessionTTL() time.Duration {
	return parseDuration(c.Sessions.TTL, time.Hour)
}

// UseRedis reports whether Redis-backed repositories are configured
func (c *Config) UseRedis() bool {
	return c.Redis.Addr != ""
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
