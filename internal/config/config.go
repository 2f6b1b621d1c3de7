// Package config loads runtime configuration from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"chainmail/internal/game"
	"chainmail/internal/rng"
	"chainmail/internal/store"
)

// Config holds application configuration.
type Config struct {
	LogLevel   string        `yaml:"log_level"`
	LogFile    string        `yaml:"log_file"`
	Port       string        `yaml:"port"`
	ContentDir string        `yaml:"content_dir"`
	Store      store.Config  `yaml:"store"`
	Seeds      rng.Seeds     `yaml:"seeds"`
	Game       game.Settings `yaml:"game"`
	// SessionIdle is how long an unused web session survives.
	SessionIdle time.Duration `yaml:"session_idle"`
}

// Default returns the configuration used when nothing is set. Live play
// seeds from entropy; fixed seeds come from CHAINMAIL_SEED or the file.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		LogFile:     "chainmail.log",
		Port:        "8080",
		Store:       store.Config{Type: "memory"},
		Seeds:       rng.Seeds{Entropy: true},
		Game:        game.DefaultSettings(),
		SessionIdle: 30 * time.Minute,
	}
}

// Load reads path over the defaults, when path is not empty, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the file named by CHAINMAIL_CONFIG, if any.
func FromEnv() (*Config, error) {
	return Load(os.Getenv("CHAINMAIL_CONFIG"))
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("CHAINMAIL_LOG_FILE", c.LogFile)
	c.Port = getEnv("PORT", c.Port)
	c.ContentDir = getEnv("CHAINMAIL_CONTENT_DIR", c.ContentDir)
	c.Store.Type = getEnv("CHAINMAIL_STORE", c.Store.Type)
	c.Store.URL = getEnv("DATABASE_URL", c.Store.URL)
	if path := os.Getenv("CHAINMAIL_DB"); path != "" {
		c.Store.Path = path
		if c.Store.Type == "" || c.Store.Type == "memory" {
			c.Store.Type = "sqlite"
		}
	}
	if seed := os.Getenv("CHAINMAIL_SEED"); seed != "" {
		s, err := ParseSeed(seed)
		if err != nil {
			return err
		}
		c.Seeds = s
	}
	if v := os.Getenv("CHAINMAIL_SKIP_INFO"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHAINMAIL_SKIP_INFO: %w", err)
		}
		c.Game.SkipInfo = skip
	}
	return nil
}

// ParseSeed reads "entropy" or a base seed. The three streams are seeded
// with consecutive values starting at the base.
func ParseSeed(v string) (rng.Seeds, error) {
	if strings.EqualFold(v, "entropy") {
		return rng.Seeds{Entropy: true}, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return rng.Seeds{}, fmt.Errorf("CHAINMAIL_SEED: %w", err)
	}
	return rng.Seeds{Letters: n, Pool: n + 1, Spawn: n + 2}, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Port == "" {
		return errors.New("port must be set")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port: %w", err)
	}
	if c.SessionIdle <= 0 {
		return errors.New("session_idle must be positive")
	}
	switch strings.ToLower(c.Store.Type) {
	case "", "memory":
	case "sqlite", "sqlite3":
		if c.Store.Path == "" {
			return errors.New("store.path is required for sqlite")
		}
	case "postgres", "postgresql", "mysql":
		if c.Store.URL == "" {
			return fmt.Errorf("store.url is required for %s", c.Store.Type)
		}
	default:
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
