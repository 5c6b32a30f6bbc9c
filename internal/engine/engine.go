package engine

import (
	"context"
	"fmt"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/executor"
	"github.com/specialistvlad/taskgrid/internal/registry"
	"github.com/specialistvlad/taskgrid/internal/report"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// Engine collects task definitions and executes them.
type Engine struct {
	reg  *registry.Registry
	exec *executor.Executor
}

// New creates an engine with an empty registry. Options are passed to the
// underlying executor.
func New(opts ...executor.Option) *Engine {
	return &Engine{
		reg:  registry.New(),
		exec: executor.New(opts...),
	}
}

// RegisterTask adds a task. Dependencies are plain names and may refer to
// tasks registered later; they are resolved by Validate.
func (e *Engine) RegisterTask(name string, dependsOn []string, action task.Action) error {
	return e.reg.Register(name, dependsOn, action)
}

// Add registers a fully described task.
func (e *Engine) Add(t task.Task) error {
	return e.reg.Add(t)
}

// Registry exposes the registered definitions.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Validate resolves every dependency and checks the graph for cycles. The
// returned error unwraps to dag.ErrInvalidGraph when the graph is invalid.
func (e *Engine) Validate(ctx context.Context) (*dag.Graph, error) {
	ctxlog.FromContext(ctx).Debug("Validating task graph.", "tasks", e.reg.Len())
	return dag.Build(ctx, e.reg)
}

// Plan returns the execution order of g without running anything.
func (e *Engine) Plan(g *dag.Graph) []string {
	return e.exec.Plan(g)
}

// Run executes a validated graph. It may be called repeatedly; each call
// starts from a clean state.
func (e *Engine) Run(ctx context.Context, g *dag.Graph) *report.Report {
	return e.exec.Run(ctx, g)
}

// Select validates the registered tasks and narrows the graph to targets and
// everything they depend on. With no targets the whole graph is returned.
func (e *Engine) Select(ctx context.Context, targets ...string) (*dag.Graph, error) {
	g, err := e.Validate(ctx)
	if err != nil {
		return nil, err
	}
	sub, err := g.Closure(targets...)
	if err != nil {
		return nil, fmt.Errorf("selecting tasks: %w", err)
	}
	return sub, nil
}

// Execute validates, selects targets and runs them in one call. Validation
// errors are returned before any action runs.
func (e *Engine) Execute(ctx context.Context, targets ...string) (*report.Report, error) {
	g, err := e.Select(ctx, targets...)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, g), nil
}
