// Package task defines the unit of work handled by the engine: a named task
// with declared dependencies and an opaque, fallible action.
package task

import "context"

// Action is the work a task performs. The engine treats it as opaque: it is
// called at most once per run and any returned error fails the task.
type Action func(ctx context.Context) error

// Task is a registered task definition. It is immutable once registered;
// execution status is tracked per run, never on the definition itself.
type Task struct {
	// Name uniquely identifies the task within one registry.
	Name string
	// Description is an optional human-readable summary.
	Description string
	// DependsOn lists the names of the tasks that must finish first, in
	// declaration order. Names are resolved when the graph is built, so they
	// may refer to tasks registered later.
	DependsOn []string
	// Action is run when all dependencies succeeded. A nil action is a no-op.
	Action Action
}

// Run invokes the task's action. A task without an action succeeds.
func (t *Task) Run(ctx context.Context) error {
	if t.Action == nil {
		return nil
	}
	return t.Action(ctx)
}
