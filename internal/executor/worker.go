package executor

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/specialistvlad/taskgrid/internal/task"
)

// PanicError is recorded as the failure of a task whose action panicked.
type PanicError struct {
	Task  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %q panicked: %v", e.Task, e.Value)
}

// invoke runs a task's action, converting a panic into a PanicError so that
// one misbehaving action cannot take down the run or a pool worker.
func invoke(ctx context.Context, t *task.Task) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Task: t.Name, Value: v, Stack: debug.Stack()}
		}
	}()
	return t.Run(ctx)
}
