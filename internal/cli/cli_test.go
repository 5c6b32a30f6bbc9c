package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, ".", cfg.TasksPath)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.DryRun)
	assert.Empty(t, cfg.Targets)
}

func TestParse_FlagsAndTargets(t *testing.T) {
	cfg, exit, err := Parse([]string{
		"-f", "build.hcl", "-w", "4", "--log-level", "DEBUG", "--log-format", "json",
		"-m", "--out-json", "report.json", "test", "build",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "build.hcl", cfg.TasksPath)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "report.json", cfg.OutJSON)
	assert.Equal(t, []string{"test", "build"}, cfg.Targets)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--workers")
}

func TestParse_UsageErrors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown flag", []string{"--nope"}, "unknown flag: --nope"},
		{"bad int", []string{"-w", "many"}, "invalid argument"},
		{"bad log level", []string{"--log-level", "trace"}, "invalid log-level"},
		{"bad log format", []string{"--log-format", "xml"}, "invalid log-format"},
		{"zero workers", []string{"-w", "0"}, "workers must be at least 1"},
		{"missing config file", []string{"-c", filepath.Join(os.TempDir(), "taskgrid-missing.yaml")}, "failed to read config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "taskgrid.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("workers: 3\nlog-level: info\nfile: from-config\n"), 0o644))

	t.Run("config file", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-c", cfgFile}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "from-config", cfg.TasksPath)
	})

	t.Run("env over config file", func(t *testing.T) {
		t.Setenv("TASKGRID_WORKERS", "5")
		t.Setenv("TASKGRID_LOG_LEVEL", "error")
		cfg, _, err := Parse([]string{"-c", cfgFile}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Workers)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "from-config", cfg.TasksPath)
	})

	t.Run("flag over env", func(t *testing.T) {
		t.Setenv("TASKGRID_WORKERS", "5")
		cfg, _, err := Parse([]string{"-c", cfgFile, "-w", "7"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Workers)
	})
}
