package executor

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/report"
	"github.com/specialistvlad/taskgrid/internal/scheduler"
	"github.com/specialistvlad/taskgrid/internal/statestore"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// result carries a finished action back to the coordinator.
type result struct {
	pos int
	err error
}

// run is the state of a single execution. Only the coordinating goroutine
// (the one inside execute) touches its fields; workers communicate through
// the results channel.
type run struct {
	e     *Executor
	g     *dag.Graph
	names []string
	store *statestore.Store
	ready scheduler.Scheduler

	// pending counts unsettled dependencies per position.
	pending []int
	order   []string
	started []string
}

func newRun(e *Executor, g *dag.Graph) *run {
	names := g.Names()
	r := &run{
		e:       e,
		g:       g,
		names:   names,
		store:   statestore.New(names),
		ready:   scheduler.New(),
		pending: make([]int, len(names)),
	}
	for i := range names {
		r.pending[i] = len(g.DependencyPositions(i))
		if r.pending[i] == 0 {
			r.ready.Push(i)
		}
	}
	return r
}

// execute drives the run to completion. Ready tasks are drawn lowest
// position first. In synchronous mode each action runs inline; otherwise
// actions are handed to a bounded pool and their results are folded back
// in here, so every status change and every release of a dependent happens
// on this goroutine, after the change is published to the store.
func (r *run) execute(ctx context.Context) *report.Report {
	var (
		workers  *pool.Pool
		results  chan result
		inFlight int
	)
	if r.e.workers > 1 {
		workers = pool.New().WithMaxGoroutines(r.e.workers)
		results = make(chan result, len(r.names))
	}

	for {
		for r.ready.Len() > 0 && inFlight < r.e.workers {
			pos := r.ready.Pop()
			if !r.admit(ctx, pos) {
				continue
			}
			t := r.g.At(pos)
			taskCtx := ctxlog.With(ctx, "task", t.Name)
			if workers == nil {
				r.complete(ctx, pos, invoke(taskCtx, t))
				continue
			}
			inFlight++
			workers.Go(func() {
				results <- result{pos: pos, err: invoke(taskCtx, t)}
			})
		}

		if inFlight == 0 {
			break
		}
		res := <-results
		inFlight--
		r.complete(ctx, res.pos, res.err)
	}

	if workers != nil {
		workers.Wait()
	}
	return report.FromStore(r.order, r.started, r.store)
}

// admit decides the fate of a ready task. It returns true when the task's
// action should run, after marking it Running. Otherwise the task has been
// settled as Skipped.
func (r *run) admit(ctx context.Context, pos int) bool {
	name := r.names[pos]
	logger := ctxlog.FromContext(ctx).With("task", name)

	for _, dep := range r.g.DependencyPositions(pos) {
		if r.store.Status(r.names[dep]) != task.Succeeded {
			logger.Debug("Dependency did not succeed, skipping task.", "blocked_by", r.names[dep])
			r.must(r.store.Skip(name, r.names[dep], nil))
			r.settle(ctx, pos)
			return false
		}
	}

	if err := ctx.Err(); err != nil {
		logger.Debug("Run stopped, skipping task.", "cause", err)
		r.must(r.store.Skip(name, "", err))
		r.settle(ctx, pos)
		return false
	}

	r.must(r.store.Start(name))
	r.started = append(r.started, name)
	for _, l := range r.e.listeners {
		l.TaskStarted(ctx, name)
	}
	return true
}

// complete records the result of an action and settles the task.
func (r *run) complete(ctx context.Context, pos int, err error) {
	name := r.names[pos]
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Task action failed.", "task", name, "error", err)
		r.must(r.store.Fail(name, err))
	} else {
		r.must(r.store.Succeed(name))
	}
	r.settle(ctx, pos)
}

// settle appends a terminal task to the order, notifies listeners, and
// releases dependents whose dependencies are now all terminal.
func (r *run) settle(ctx context.Context, pos int) {
	name := r.names[pos]
	r.order = append(r.order, name)

	if len(r.e.listeners) > 0 {
		entry, _ := r.store.Get(name)
		outcome := report.Outcome{
			Name:      name,
			Status:    entry.Status,
			Err:       entry.Err,
			BlockedBy: entry.BlockedBy,
			Duration:  entry.Duration(),
		}
		for _, l := range r.e.listeners {
			l.TaskFinished(ctx, outcome)
		}
	}

	for _, dependent := range r.g.DependentPositions(pos) {
		r.pending[dependent]--
		if r.pending[dependent] == 0 {
			r.ready.Push(dependent)
		}
	}
}

// must panics on a state store error. The coordinator only requests legal
// transitions, so an error here means the scheduling invariants are broken.
func (r *run) must(err error) {
	if err != nil {
		panic(fmt.Sprintf("executor: %v", err))
	}
}
