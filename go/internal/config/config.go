// Package config loads service settings from an optional yaml file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var backends = []string{BackendFile, BackendSQLite, BackendMemory}

// ErrInvalidConfig is returned when a setting is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every setting of the service
type Config struct {
	Port           string        `yaml:"port" env:"PLAYCLOCK_PORT"`
	MaxActive      int           `yaml:"max_active" env:"PLAYCLOCK_MAX_ACTIVE"`
	TickInterval   time.Duration `yaml:"tick_interval" env:"PLAYCLOCK_TICK_INTERVAL"`
	StorageBackend string        `yaml:"storage_backend" env:"PLAYCLOCK_STORAGE_BACKEND"`
	StoragePath    string        `yaml:"storage_path" env:"PLAYCLOCK_STORAGE_PATH"`
	LogLevel       string        `yaml:"log_level" env:"PLAYCLOCK_LOG_LEVEL"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"PLAYCLOCK_ALLOWED_ORIGINS" envSeparator:","`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Port:           "8080",
		MaxActive:      9,
		TickInterval:   100 * time.Millisecond,
		StorageBackend: BackendFile,
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
	}
}

// LoadDotEnv loads a .env file into the environment if one exists
func LoadDotEnv(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// Load builds the config from defaults, the yaml file at path (skipped when
// path is empty) and the environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	if c.MaxActive <= 0 {
		return fmt.Errorf("%w: max_active must be positive, got %d", ErrInvalidConfig, c.MaxActive)
	}
	if c.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("%w: tick_interval must be at least 10ms, got %s", ErrInvalidConfig, c.TickInterval)
	}
	if !slices.Contains(backends, c.StorageBackend) {
		return fmt.Errorf("%w: storage_backend must be one of %v, got %q", ErrInvalidConfig, backends, c.StorageBackend)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the configured log level
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// ResolvedStoragePath returns the storage path, falling back to a file name
// that matches the backend.
func (c Config) ResolvedStoragePath() string {
	if c.StoragePath != "" {
		return c.StoragePath
	}
	switch c.StorageBackend {
	case BackendSQLite:
		return "playclock.db"
	case BackendFile:
		return "playclock.json"
	default:
		return ""
	}
}
