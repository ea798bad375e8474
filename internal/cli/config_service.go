package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agisilaos/macsearch/internal/config"
	"github.com/agisilaos/macsearch/internal/logging"
)

var configKeys = []string{"base_url", "timeout_seconds", "workers", "wait_timeout_seconds", "log_level", "log_format"}

func configGet(cfg config.Config, key string) (string, bool) {
	switch key {
	case "base_url":
		return cfg.BaseURL, true
	case "timeout_seconds":
		return strconv.Itoa(cfg.TimeoutSec), true
	case "workers":
		return strconv.Itoa(cfg.Workers), true
	case "wait_timeout_seconds":
		return strconv.Itoa(cfg.WaitTimeoutSec), true
	case "log_level":
		return string(cfg.Level), true
	case "log_format":
		return string(cfg.Format), true
	default:
		return "", false
	}
}

func configSet(cfg *config.Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "base_url":
		cfg.BaseURL = strings.TrimRight(value, "/")
	case "timeout_seconds":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		cfg.TimeoutSec = n
	case "workers":
		n, err := parsePositiveInt(key, value)
		if err != nil {
			return err
		}
		cfg.Workers = n
	case "wait_timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
		cfg.WaitTimeoutSec = n
	case "log_level":
		level := logging.Level(strings.ToLower(value))
		if _, err := logging.ParseLevel(level); err != nil {
			return err
		}
		cfg.Level = level
	case "log_format":
		switch f := logging.Format(strings.ToLower(value)); f {
		case logging.FormatJSON, logging.FormatConsole:
			cfg.Format = f
		default:
			return fmt.Errorf("log_format must be json or console")
		}
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func parsePositiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be positive integer", key)
	}
	return n, nil
}
