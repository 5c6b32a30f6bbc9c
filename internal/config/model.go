package config

import (
	"errors"
	"fmt"
)

// Model is the merged content of every loaded task file.
type Model struct {
	Tasks []*Task
}

// Task is the format-agnostic representation of one declared task.
type Task struct {
	Name        string
	Description string
	DependsOn   []string
	// DoFirst steps run before DoLast steps.
	DoFirst []Step
	DoLast  []Step
	// Source is the "file:line" the task was declared at.
	Source string
}

// Steps returns DoFirst followed by DoLast.
func (t *Task) Steps() []Step {
	steps := make([]Step, 0, len(t.DoFirst)+len(t.DoLast))
	steps = append(steps, t.DoFirst...)
	return append(steps, t.DoLast...)
}

// StepKind selects what a step does.
type StepKind int

const (
	// StepPrint writes its message as a line of output.
	StepPrint StepKind = iota
	// StepFail fails the task with its message.
	StepFail
)

func (k StepKind) String() string {
	switch k {
	case StepPrint:
		return "print"
	case StepFail:
		return "fail"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// Step is a single declared action step.
type Step struct {
	Kind    StepKind
	Message string
}

// ErrInvalidStep is returned for a step that sets none or more than one of
// its attributes.
var ErrInvalidStep = errors.New("a step must set exactly one of print or fail")

// NewStep builds a Step from the optional attributes every format exposes.
func NewStep(printMsg, failMsg *string) (Step, error) {
	switch {
	case printMsg != nil && failMsg == nil:
		return Step{Kind: StepPrint, Message: *printMsg}, nil
	case failMsg != nil && printMsg == nil:
		return Step{Kind: StepFail, Message: *failMsg}, nil
	default:
		return Step{}, ErrInvalidStep
	}
}

// Merge appends the tasks of other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Tasks = append(m.Tasks, other.Tasks...)
}

// Names returns task names in declaration order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Tasks))
	for i, t := range m.Tasks {
		names[i] = t.Name
	}
	return names
}
