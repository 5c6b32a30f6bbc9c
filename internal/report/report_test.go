package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/specialistvlad/taskgrid/internal/statestore"
	"github.com/specialistvlad/taskgrid/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCompile = errors.New("compilation failed")

// failedRun builds the report of: compile fails, test is skipped because of
// it, docs succeeds independently.
func failedRun(t *testing.T) *Report {
	t.Helper()
	s := statestore.New([]string{"compile", "test", "docs"})
	require.NoError(t, s.Start("compile"))
	require.NoError(t, s.Fail("compile", errCompile))
	require.NoError(t, s.Skip("test", "compile", nil))
	require.NoError(t, s.Start("docs"))
	require.NoError(t, s.Succeed("docs"))
	return FromStore([]string{"compile", "test", "docs"}, []string{"compile", "docs"}, s)
}

func TestFromStore(t *testing.T) {
	r := failedRun(t)

	assert.Equal(t, task.Failed, r.Status("compile"))
	assert.Equal(t, task.Skipped, r.Status("test"))
	assert.Equal(t, task.Succeeded, r.Status("docs"))
	assert.Equal(t, task.Pending, r.Status("unknown"))

	require.Len(t, r.Errors, 1)
	assert.Equal(t, "compile", r.Errors[0].Task)
	assert.ErrorIs(t, r.Errors[0], errCompile)

	o, ok := r.Outcome("test")
	require.True(t, ok)
	assert.Equal(t, "compile", o.BlockedBy)

	assert.Equal(t, Counts{Succeeded: 1, Failed: 1, Skipped: 1}, r.Counts())
	assert.False(t, r.Succeeded())
	assert.Equal(t, []string{"compile", "docs"}, r.Started)

	names := make([]string, 0, 3)
	for _, o := range r.Outcomes() {
		names = append(names, o.Name)
	}
	assert.Equal(t, r.Order, names)
}

func TestErr(t *testing.T) {
	t.Run("action failures are joined", func(t *testing.T) {
		err := failedRun(t).Err()
		require.Error(t, err)
		assert.ErrorIs(t, err, errCompile)

		var actionErr ActionError
		require.ErrorAs(t, err, &actionErr)
		assert.Equal(t, "compile", actionErr.Task)
		assert.Contains(t, err.Error(), `task "compile" failed: compilation failed`)
	})

	t.Run("successful run has no error", func(t *testing.T) {
		s := statestore.New([]string{"compile"})
		require.NoError(t, s.Start("compile"))
		require.NoError(t, s.Succeed("compile"))
		r := FromStore([]string{"compile"}, []string{"compile"}, s)
		assert.NoError(t, r.Err())
		assert.True(t, r.Succeeded())
	})

	t.Run("cancellation cause surfaces", func(t *testing.T) {
		s := statestore.New([]string{"compile"})
		require.NoError(t, s.Skip("compile", "", context.Canceled))
		r := FromStore([]string{"compile"}, nil, s)
		assert.ErrorIs(t, r.Err(), context.Canceled)
	})
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, failedRun(t).Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "compile")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "compilation failed")
	assert.Contains(t, out, "(blocked by compile)")
	assert.Contains(t, out, "BUILD FAILED: 1 succeeded, 1 failed, 1 skipped")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, failedRun(t).WriteJSON(&buf))

	var doc struct {
		Succeeded bool `json:"succeeded"`
		Tasks     []struct {
			Name      string `json:"name"`
			Status    string `json:"status"`
			Error     string `json:"error"`
			BlockedBy string `json:"blocked_by"`
		} `json:"tasks"`
		Counts struct {
			Failed int
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.False(t, doc.Succeeded)
	require.Len(t, doc.Tasks, 3)
	assert.Equal(t, "failed", doc.Tasks[0].Status)
	assert.Equal(t, "compilation failed", doc.Tasks[0].Error)
	assert.Equal(t, "compile", doc.Tasks[1].BlockedBy)
	assert.Equal(t, 1, doc.Counts.Failed)
}
