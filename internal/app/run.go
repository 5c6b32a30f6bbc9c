package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/report"
)

// ErrBuildFailed is wrapped by the error Run returns when a task did not
// succeed.
var ErrBuildFailed = errors.New("build failed")

// Run validates the task graph, narrows it to the configured targets and
// executes it. The returned report is nil when nothing was executed.
func (a *App) Run(ctx context.Context) (*report.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	g, err := a.engine.Select(ctx, a.config.Targets...)
	if err != nil {
		return nil, fmt.Errorf("invalid task graph: %w", err)
	}
	a.logger.Debug("Task graph validated.", "tasks", g.Len(), "targets", a.config.Targets)

	if a.config.DryRun {
		for _, name := range a.engine.Plan(g) {
			fmt.Fprintf(a.outW, ":%s SKIPPED\n", name)
		}
		return nil, nil
	}

	if g.Len() == 0 {
		a.logger.Warn("No tasks found, execution not required.")
	} else {
		a.logger.Info("🚀 Starting execution...", "tasks", g.Len(), "workers", a.config.Workers)
	}
	rep := a.engine.Run(ctx, g)

	if err := rep.Render(a.outW); err != nil {
		return rep, fmt.Errorf("failed to render report: %w", err)
	}
	if a.config.OutJSON != "" {
		if err := writeJSON(a.config.OutJSON, rep); err != nil {
			return rep, err
		}
		a.logger.Debug("Report written.", "path", a.config.OutJSON)
	}

	if !rep.Succeeded() {
		if cause := rep.Err(); cause != nil {
			return rep, fmt.Errorf("%w: %w", ErrBuildFailed, cause)
		}
		return rep, ErrBuildFailed
	}
	a.logger.Debug("App.Run method finished.")
	return rep, nil
}

func writeJSON(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := rep.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}
