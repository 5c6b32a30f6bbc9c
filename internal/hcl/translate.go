package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/taskgrid/internal/config"
)

// translateTask converts the HCL task schema into the agnostic model.
func translateTask(tb *taskBlock, source string) (*config.Task, error) {
	t := &config.Task{
		Name:      tb.Name,
		DependsOn: tb.DependsOn,
		Source:    source,
	}
	if tb.Description != nil {
		t.Description = *tb.Description
	}

	var err error
	if t.DoFirst, err = translateSteps(tb.DoFirst); err != nil {
		return nil, fmt.Errorf("task %q: %w", tb.Name, err)
	}
	if t.DoLast, err = translateSteps(tb.DoLast); err != nil {
		return nil, fmt.Errorf("task %q: %w", tb.Name, err)
	}
	return t, nil
}

func translateSteps(blocks []*stepBlock) ([]config.Step, error) {
	var steps []config.Step
	for i, b := range blocks {
		s, err := config.NewStep(b.Print, b.Fail)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

// taskSources returns "file:line" for every task block of body, in
// declaration order, matching the order gohcl decodes them in.
func taskSources(file string, body hcl.Body) []string {
	sb, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	var sources []string
	for _, b := range sb.Blocks {
		if b.Type == "task" {
			sources = append(sources, fmt.Sprintf("%s:%d", file, b.TypeRange.Start.Line))
		}
	}
	return sources
}
