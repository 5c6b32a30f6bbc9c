// Package executor runs a validated task graph.
//
// Each run walks the graph in topological order, invoking every task's
// action at most once. A failed action fails only its own task; every task
// that transitively depends on it is skipped while unrelated branches keep
// running. The run always ends with a complete report.
package executor

import (
	"context"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/report"
)

// Executor is responsible for orchestrating the execution of a graph.
// An Executor holds configuration only, so it may be reused, and each Run
// gets its own state.
type Executor struct {
	workers   int
	listeners []Listener
}

// Option configures an Executor.
type Option func(*Executor)

// WithWorkers sets how many actions may run at the same time. Values below
// two select the synchronous mode, where every action runs to completion on
// the caller's goroutine before the next one starts.
func WithWorkers(n int) Option {
	return func(e *Executor) {
		e.workers = n
	}
}

// WithListener registers a listener for task lifecycle events.
func WithListener(l Listener) Option {
	return func(e *Executor) {
		if l != nil {
			e.listeners = append(e.listeners, l)
		}
	}
}

// New creates an executor. By default it runs synchronously.
func New(opts ...Option) *Executor {
	e := &Executor{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// Workers returns the configured concurrency.
func (e *Executor) Workers() int {
	return e.workers
}

// Plan returns the order in which a synchronous run would visit the graph,
// without invoking any action.
func (e *Executor) Plan(g *dag.Graph) []string {
	return g.Order()
}

// Run executes the graph and returns its report. Once ctx is done no
// further action is started; the remaining tasks are reported as skipped.
// Concurrent calls must not share a graph with mutable actions.
func (e *Executor) Run(ctx context.Context, g *dag.Graph) *report.Report {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executor starting run.", "tasks", g.Len(), "workers", e.workers)

	r := newRun(e, g)
	rep := r.execute(ctx)

	for _, l := range e.listeners {
		l.RunFinished(ctx, rep)
	}
	counts := rep.Counts()
	logger.Debug("Executor finished run.",
		"succeeded", counts.Succeeded, "failed", counts.Failed, "skipped", counts.Skipped)
	return rep
}
