package app

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfig is wrapped by every error returned from NewConfig.
var ErrInvalidConfig = errors.New("invalid configuration")

var logFormats = []string{"text", "json"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TasksPath string   // task file or directory
	Targets   []string // empty means every task

	LogFormat string
	LogLevel  string
	Workers   int

	DryRun  bool
	OutJSON string // report destination, "" to skip
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.TasksPath == "" {
		return nil, fmt.Errorf("%w: a task file or directory is required", ErrInvalidConfig)
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("%w: invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", ErrInvalidConfig, cfg.LogLevel)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("%w: invalid log-format %q: must be 'text' or 'json'", ErrInvalidConfig, cfg.LogFormat)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, cfg.Workers)
	}
	cfg.Targets = slices.Clone(cfg.Targets)
	return &cfg, nil
}
