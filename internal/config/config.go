package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/agisilaos/macsearch/internal/logging"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

type Config struct {
	BaseURL        string `json:"base_url" validate:"required,url"`
	TimeoutSec     int    `json:"timeout_seconds,omitempty" validate:"gt=0,lte=300"`
	Workers        int    `json:"workers,omitempty" validate:"gt=0,lte=64"`
	WaitTimeoutSec int    `json:"wait_timeout_seconds,omitempty" validate:"gte=0"`
	logging.Config
}

// envOverrides holds the environment layer. Only non-zero values replace
// what the config file set.
type envOverrides struct {
	BaseURL        string `env:"MACSEARCH_BASE_URL"`
	TimeoutSec     int    `env:"MACSEARCH_TIMEOUT_SECONDS"`
	Workers        int    `env:"MACSEARCH_WORKERS"`
	WaitTimeoutSec int    `env:"MACSEARCH_WAIT_TIMEOUT_SECONDS"`
	LogLevel       string `env:"MACSEARCH_LOG_LEVEL"`
	LogFormat      string `env:"MACSEARCH_LOG_FORMAT"`
}

func Defaults() Config {
	return Config{
		BaseURL:    storesearch.DefaultBaseURL,
		TimeoutSec: 20,
		Workers:    4,
		Config: logging.Config{
			Level:  logging.LevelWarn,
			Format: logging.FormatConsole,
		},
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c Config) WaitTimeout() time.Duration {
	return time.Duration(c.WaitTimeoutSec) * time.Second
}

func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "macsearch"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "macsearch"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load layers defaults, the config file, an optional .env file in the
// working directory and the process environment, then validates the result.
func Load() (Config, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Save(cfg Config) error {
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(filepath.Join(dir, "config.json"), b, 0o600)
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return nil
		}
		return fmt.Errorf("decode environment: %w", err)
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.TimeoutSec != 0 {
		cfg.TimeoutSec = env.TimeoutSec
	}
	if env.Workers != 0 {
		cfg.Workers = env.Workers
	}
	if env.WaitTimeoutSec != 0 {
		cfg.WaitTimeoutSec = env.WaitTimeoutSec
	}
	if env.LogLevel != "" {
		cfg.Level = logging.Level(env.LogLevel)
	}
	if env.LogFormat != "" {
		cfg.Format = logging.Format(env.LogFormat)
	}
	return nil
}
