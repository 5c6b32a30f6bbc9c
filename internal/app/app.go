package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/taskgrid/internal/actions"
	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/engine"
	"github.com/specialistvlad/taskgrid/internal/executor"
	"github.com/specialistvlad/taskgrid/internal/hcl"
	"github.com/specialistvlad/taskgrid/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	engine *engine.Engine
}

// DefaultLoaders returns a loader for every supported task file format.
func DefaultLoaders() []config.Loader {
	return []config.Loader{hcl.NewLoader(), yamlconf.NewLoader()}
}

// NewApp loads the task files named by cfg and registers their tasks.
// Task output and the summary go to outW, logs go to logW. Without loaders
// DefaultLoaders is used.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loaders ...config.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = DefaultLoaders()
	}
	model, err := config.Load(ctx, cfg.TasksPath, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	logger.Debug("Task files loaded into unified model.", "tasks", len(model.Tasks))

	outW = actions.SyncWriter(outW)
	eng := engine.New(
		executor.WithWorkers(cfg.Workers),
		executor.WithListener(executor.LogListener{}),
		executor.WithListener(executor.NewConsoleListener(outW)),
	)
	if err := actions.NewBuilder(outW).Register(ctx, eng, model); err != nil {
		return nil, fmt.Errorf("failed to register tasks: %w", err)
	}
	logger.Debug("All tasks registered.", "count", eng.Registry().Len())

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		engine: eng,
	}, nil
}

// Engine returns the application's engine. This is primarily for testing.
func (a *App) Engine() *engine.Engine {
	return a.engine
}
