package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRun(t *testing.T) {
	t.Run("nil action succeeds", func(t *testing.T) {
		tk := &Task{Name: "build"}
		assert.NoError(t, tk.Run(context.Background()))
	})

	t.Run("action error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		tk := &Task{Name: "compile", Action: func(context.Context) error { return boom }}
		assert.ErrorIs(t, tk.Run(context.Background()), boom)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{Pending, Running, true},
		{Pending, Skipped, true},
		{Pending, Succeeded, false},
		{Running, Succeeded, true},
		{Running, Failed, true},
		{Running, Skipped, false},
		{Succeeded, Running, false},
		{Failed, Pending, false},
		{Skipped, Running, false},
	}
	for _, tc := range cases {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransition(tc.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, Pending.Terminal())
	assert.False(t, Running.Terminal())
	assert.True(t, Succeeded.Terminal())
	assert.True(t, Failed.Terminal())
	assert.True(t, Skipped.Terminal())
}

func TestStatusText(t *testing.T) {
	out, err := json.Marshal(map[string]Status{"test": Skipped})
	require.NoError(t, err)
	assert.JSONEq(t, `{"test":"skipped"}`, string(out))

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("failed")))
	assert.Equal(t, Failed, s)
	assert.Error(t, s.UnmarshalText([]byte("exploded")))
	assert.Equal(t, "status(42)", Status(42).String())
}
