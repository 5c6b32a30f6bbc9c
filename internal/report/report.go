// Package report aggregates the outcome of one executor run.
//
// A Report is assembled once, when the run is over, and is read-only
// afterwards: every accessor returns copies.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/taskgrid/internal/statestore"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// ActionError pairs a failed task with the error its action returned.
type ActionError struct {
	Task string
	Err  error
}

func (e ActionError) Error() string {
	return fmt.Sprintf("task %q failed: %v", e.Task, e.Err)
}

func (e ActionError) Unwrap() error { return e.Err }

// Outcome is the final state of a single task.
type Outcome struct {
	Name   string
	Status task.Status
	// Err is the action error for failed tasks, or the cancellation cause
	// for tasks skipped because the run stopped.
	Err error
	// BlockedBy names the dependency that prevented a skipped task from running.
	BlockedBy string
	Duration  time.Duration
}

// Counts tallies outcomes by terminal status.
type Counts struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Report is the result of a run.
type Report struct {
	// Order lists every task in the order it reached a terminal state.
	Order []string
	// Started lists the tasks whose action was invoked, in invocation order.
	Started []string
	// Statuses maps each task name to its final status.
	Statuses map[string]task.Status
	// Errors lists action failures in the order they were recorded.
	Errors []ActionError

	outcomes map[string]Outcome
}

// FromStore freezes the state of a finished run. order and started are the
// settlement and invocation sequences observed by the executor.
func FromStore(order, started []string, store *statestore.Store) *Report {
	r := &Report{
		Order:    append([]string(nil), order...),
		Started:  append([]string(nil), started...),
		Statuses: make(map[string]task.Status, len(order)),
		outcomes: make(map[string]Outcome, len(order)),
	}
	for _, name := range order {
		entry, _ := store.Get(name)
		r.Statuses[name] = entry.Status
		r.outcomes[name] = Outcome{
			Name:      name,
			Status:    entry.Status,
			Err:       entry.Err,
			BlockedBy: entry.BlockedBy,
			Duration:  entry.Duration(),
		}
		if entry.Status == task.Failed {
			r.Errors = append(r.Errors, ActionError{Task: name, Err: entry.Err})
		}
	}
	return r
}

// Status returns the final status of name, or Pending if the task was not
// part of the run.
func (r *Report) Status(name string) task.Status {
	if s, ok := r.Statuses[name]; ok {
		return s
	}
	return task.Pending
}

// Outcome returns the outcome of name.
func (r *Report) Outcome(name string) (Outcome, bool) {
	o, ok := r.outcomes[name]
	return o, ok
}

// Outcomes returns all outcomes in settlement order.
func (r *Report) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.Order))
	for _, name := range r.Order {
		out = append(out, r.outcomes[name])
	}
	return out
}

// Counts tallies the run's terminal statuses.
func (r *Report) Counts() Counts {
	var c Counts
	for _, s := range r.Statuses {
		switch s {
		case task.Succeeded:
			c.Succeeded++
		case task.Failed:
			c.Failed++
		case task.Skipped:
			c.Skipped++
		}
	}
	return c
}

// Succeeded reports whether every task in the run succeeded.
func (r *Report) Succeeded() bool {
	c := r.Counts()
	return c.Failed == 0 && c.Skipped == 0
}

// Err joins all action errors, or returns nil if no action failed. Each
// joined error is an ActionError, so errors.Is reaches the action's own error.
// A run that only skipped tasks (for example after cancellation) reports the
// cancellation cause instead.
func (r *Report) Err() error {
	if len(r.Errors) > 0 {
		errs := make([]error, len(r.Errors))
		for i, e := range r.Errors {
			errs[i] = e
		}
		return errors.Join(errs...)
	}
	for _, name := range r.Order {
		if o := r.outcomes[name]; o.Status == task.Skipped && o.Err != nil {
			return fmt.Errorf("task %q skipped: %w", name, o.Err)
		}
	}
	return nil
}
