package actions

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_PrintSteps(t *testing.T) {
	var out bytes.Buffer
	tk := NewBuilder(&out).Task(&config.Task{
		Name:        "test",
		Description: "Runs the unit tests.",
		DependsOn:   []string{"compile"},
		DoFirst:     []config.Step{{Kind: config.StepPrint, Message: "first"}},
		DoLast:      []config.Step{{Kind: config.StepPrint, Message: "last"}},
	})

	assert.Equal(t, "test", tk.Name)
	assert.Equal(t, "Runs the unit tests.", tk.Description)
	assert.Equal(t, []string{"compile"}, tk.DependsOn)
	require.NotNil(t, tk.Action)
	require.NoError(t, tk.Run(context.Background()))
	assert.Equal(t, "first\nlast\n", out.String())
}

func TestBuilder_FailStepStopsAction(t *testing.T) {
	var out bytes.Buffer
	tk := NewBuilder(&out).Task(&config.Task{
		Name: "lint",
		DoLast: []config.Step{
			{Kind: config.StepPrint, Message: "linting"},
			{Kind: config.StepFail, Message: "3 problems"},
			{Kind: config.StepPrint, Message: "unreachable"},
		},
	})

	err := tk.Run(context.Background())
	var failed *StepFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "3 problems", failed.Message)
	assert.Equal(t, "linting\n", out.String())
}

func TestBuilder_NoStepsIsNoop(t *testing.T) {
	tk := NewBuilder(&bytes.Buffer{}).Task(&config.Task{Name: "build"})
	assert.Nil(t, tk.Action)
	assert.NoError(t, tk.Run(context.Background()))
}

func TestBuilder_CancelledContext(t *testing.T) {
	var out bytes.Buffer
	tk := NewBuilder(&out).Task(&config.Task{
		Name:   "compile",
		DoLast: []config.Step{{Kind: config.StepPrint, Message: "compiling"}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, tk.Run(ctx), context.Canceled)
	assert.Empty(t, out.String())
}

func TestBuilder_Register(t *testing.T) {
	reg := registry.New()
	m := &config.Model{Tasks: []*config.Task{
		{Name: "compile", Source: "build.hcl:1"},
		{Name: "test", DependsOn: []string{"compile"}, Source: "build.hcl:5"},
	}}

	require.NoError(t, NewBuilder(&bytes.Buffer{}).Register(context.Background(), reg, m))
	assert.Equal(t, []string{"compile", "test"}, reg.Names())

	dup := &config.Model{Tasks: []*config.Task{{Name: "compile", Source: "other.yaml:3"}}}
	err := NewBuilder(&bytes.Buffer{}).Register(context.Background(), reg, dup)
	var dupErr *registry.DuplicateTaskError
	require.ErrorAs(t, err, &dupErr)
	assert.Contains(t, err.Error(), "other.yaml:3")
}

func TestSyncWriter(t *testing.T) {
	var out bytes.Buffer
	w := SyncWriter(&out)
	assert.Same(t, w, SyncWriter(w))

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_, _ = w.Write([]byte("line\n"))
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	assert.Equal(t, 400*len("line\n"), out.Len())
}
