package executor

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/report"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// Listener observes task lifecycle events. Calls for one run are made from
// a single goroutine, in the order the events happen.
type Listener interface {
	// TaskStarted is called right before a task's action is invoked.
	TaskStarted(ctx context.Context, name string)
	// TaskFinished is called once per task when it reaches a terminal
	// status, including tasks that were skipped.
	TaskFinished(ctx context.Context, outcome report.Outcome)
	// RunFinished is called with the final report.
	RunFinished(ctx context.Context, rep *report.Report)
}

// LogListener reports task events through the context's slog.Logger.
type LogListener struct{}

// TaskStarted implements the Listener interface.
func (LogListener) TaskStarted(ctx context.Context, name string) {
	ctxlog.FromContext(ctx).Info("▶️ Starting task", "task", name)
}

// TaskFinished implements the Listener interface.
func (LogListener) TaskFinished(ctx context.Context, o report.Outcome) {
	logger := ctxlog.FromContext(ctx).With("task", o.Name)
	switch o.Status {
	case task.Succeeded:
		logger.Info("✅ Finished task", "duration", o.Duration)
	case task.Failed:
		logger.Error("❌ Task failed", "error", o.Err, "duration", o.Duration)
	case task.Skipped:
		if o.BlockedBy != "" {
			logger.Warn("⏭️ Skipped task", "blocked_by", o.BlockedBy)
		} else {
			logger.Warn("⏭️ Skipped task", "cause", o.Err)
		}
	}
}

// RunFinished implements the Listener interface.
func (LogListener) RunFinished(ctx context.Context, rep *report.Report) {
	c := rep.Counts()
	logger := ctxlog.FromContext(ctx)
	if rep.Succeeded() {
		logger.Info("🏁 Run finished.", "succeeded", c.Succeeded)
		return
	}
	logger.Warn("🏁 Run finished with problems.", "succeeded", c.Succeeded, "failed", c.Failed, "skipped", c.Skipped)
}

// ConsoleListener prints one header line per task to w, the way build tools
// announce tasks, so output written by actions lands under its task.
type ConsoleListener struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleListener creates a ConsoleListener writing to w.
func NewConsoleListener(w io.Writer) *ConsoleListener {
	return &ConsoleListener{w: w}
}

// TaskStarted implements the Listener interface.
func (c *ConsoleListener) TaskStarted(_ context.Context, name string) {
	c.printf("> Task :%s\n", name)
}

// TaskFinished implements the Listener interface.
func (c *ConsoleListener) TaskFinished(_ context.Context, o report.Outcome) {
	switch o.Status {
	case task.Failed:
		c.printf("> Task :%s FAILED\n", o.Name)
	case task.Skipped:
		c.printf("> Task :%s SKIPPED\n", o.Name)
	}
}

// RunFinished implements the Listener interface.
func (c *ConsoleListener) RunFinished(context.Context, *report.Report) {}

func (c *ConsoleListener) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}
