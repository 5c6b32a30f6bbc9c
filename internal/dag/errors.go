package dag

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGraph is the common cause of every validation failure.
var ErrInvalidGraph = errors.New("invalid task graph")

// UnknownDependencyError reports a dependency name that resolves to no task.
type UnknownDependencyError struct {
	Task       string
	Dependency string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task %q depends on unknown task %q", e.Task, e.Dependency)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrInvalidGraph }

// CyclicDependencyError reports a dependency cycle. Cycle is the closed path
// of task names, each depending on the next: [a b a] means a depends on b
// and b depends on a. A self-dependency is reported as [a a].
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return "cyclic dependency: " + strings.Join(e.Cycle, " -> ")
}

func (e *CyclicDependencyError) Unwrap() error { return ErrInvalidGraph }
