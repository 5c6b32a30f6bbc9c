package actions

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// StepFailedError is returned by an action whose fail step ran.
type StepFailedError struct {
	Message string
}

func (e *StepFailedError) Error() string {
	return e.Message
}

// Registrar accepts task definitions.
type Registrar interface {
	Add(t task.Task) error
}

// syncWriter serialises writes from actions running on different workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// SyncWriter wraps w so concurrent writers cannot interleave within a
// single Write call. Wrapping a writer returned by SyncWriter is a no-op.
func SyncWriter(w io.Writer) io.Writer {
	if sw, ok := w.(*syncWriter); ok {
		return sw
	}
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Builder converts declared tasks into task definitions whose actions write
// to a shared output.
type Builder struct {
	out io.Writer
}

// NewBuilder creates a Builder writing print output to out.
func NewBuilder(out io.Writer) *Builder {
	return &Builder{out: SyncWriter(out)}
}

// Task converts one declared task. A task without steps gets a nil action,
// which the executor treats as a no-op.
func (b *Builder) Task(decl *config.Task) task.Task {
	t := task.Task{
		Name:        decl.Name,
		Description: decl.Description,
		DependsOn:   decl.DependsOn,
	}
	if steps := decl.Steps(); len(steps) > 0 {
		t.Action = b.action(steps)
	}
	return t
}

// action runs steps in order. The executor attaches the task name to the
// context logger.
func (b *Builder) action(steps []config.Step) task.Action {
	return func(ctx context.Context) error {
		logger := ctxlog.FromContext(ctx)
		for i, s := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			logger.Debug("Running step.", "step", i+1, "kind", s.Kind)
			switch s.Kind {
			case config.StepPrint:
				if _, err := fmt.Fprintln(b.out, s.Message); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			case config.StepFail:
				return &StepFailedError{Message: s.Message}
			default:
				return fmt.Errorf("unsupported step kind %s", s.Kind)
			}
		}
		return nil
	}
}

// Register converts every task of m and adds it to r in declaration order.
// The first registration error is returned with the task's source.
func (b *Builder) Register(ctx context.Context, r Registrar, m *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	for _, decl := range m.Tasks {
		if err := r.Add(b.Task(decl)); err != nil {
			if decl.Source != "" {
				return fmt.Errorf("%s: %w", decl.Source, err)
			}
			return err
		}
		logger.Debug("Registered task.", "task", decl.Name, "source", decl.Source)
	}
	return nil
}
