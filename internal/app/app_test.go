package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/taskgrid/internal/dag"
	"github.com/specialistvlad/taskgrid/internal/registry"
	"github.com/specialistvlad/taskgrid/internal/task"
	"github.com/specialistvlad/taskgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAppTest creates an app for the given config, capturing its output
// and logs. Set TASKGRID_TEST_LOGS=true to print the logs of each test.
func setupAppTest(t *testing.T, cfg Config) (*App, *testutil.SafeBuffer, error) {
	t.Helper()
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	valid, err := NewConfig(cfg)
	require.NoError(t, err)

	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("TASKGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	a, err := NewApp(context.Background(), out, logs, valid)
	return a, out, err
}

func TestApp_RunsSampleInBothFormats(t *testing.T) {
	for _, file := range []string{"build.hcl", "build.yaml"} {
		t.Run(file, func(t *testing.T) {
			a, out, err := setupAppTest(t, Config{TasksPath: testutil.SampleFile(t, file)})
			require.NoError(t, err)

			rep, err := a.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, testutil.SampleNames, rep.Order)

			assert.True(t, strings.HasPrefix(out.String(), "> Task :compile\n"+
				"compiling sources\n"+
				"> Task :testCompile\n"+
				"compiling test sources\n"+
				"> Task :test\n"+
				"preparing test run\n"+
				"running unit tests\n"+
				"> Task :build\n"), out.String())
			assert.Contains(t, out.String(), "BUILD SUCCESSFUL: 4 succeeded, 0 failed, 0 skipped")
		})
	}
}

func TestApp_FailureAndTargets(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"build.hcl": `
task "compile" {
  do_last { print = "compiling" }
}
task "lint" {
  do_last { fail = "3 lint problems" }
}
task "check" {
  depends_on = ["lint", "compile"]
}
task "docs" {
  depends_on = ["compile"]
}
`,
	})

	t.Run("failure is reported", func(t *testing.T) {
		jsonPath := filepath.Join(t.TempDir(), "report.json")
		a, out, err := setupAppTest(t, Config{TasksPath: root, Workers: 2, OutJSON: jsonPath})
		require.NoError(t, err)

		rep, err := a.Run(context.Background())
		require.ErrorIs(t, err, ErrBuildFailed)
		assert.ErrorContains(t, err, "3 lint problems")
		assert.Equal(t, task.Failed, rep.Status("lint"))
		assert.Equal(t, task.Skipped, rep.Status("check"))
		assert.Equal(t, task.Succeeded, rep.Status("docs"))
		assert.Contains(t, out.String(), "> Task :lint FAILED")
		assert.Contains(t, out.String(), "BUILD FAILED")

		data, err := os.ReadFile(jsonPath)
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, false, doc["succeeded"])
	})

	t.Run("targets narrow the run", func(t *testing.T) {
		a, out, err := setupAppTest(t, Config{TasksPath: root, Targets: []string{"docs"}})
		require.NoError(t, err)

		rep, err := a.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"compile", "docs"}, rep.Order)
		assert.NotContains(t, out.String(), "lint")
	})

	t.Run("unknown target", func(t *testing.T) {
		a, _, err := setupAppTest(t, Config{TasksPath: root, Targets: []string{"deploy"}})
		require.NoError(t, err)

		_, err = a.Run(context.Background())
		var unknown *registry.UnknownTaskError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("dry run", func(t *testing.T) {
		a, out, err := setupAppTest(t, Config{TasksPath: root, DryRun: true})
		require.NoError(t, err)

		rep, err := a.Run(context.Background())
		require.NoError(t, err)
		assert.Nil(t, rep)
		assert.Equal(t, ":compile SKIPPED\n:lint SKIPPED\n:check SKIPPED\n:docs SKIPPED\n", out.String())
	})
}

func TestApp_InvalidGraph(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{
		"a.yaml": "tasks:\n  - name: a\n    depends_on: [b]\n    do_last: [{print: ran}]\n",
		"b.hcl":  `task "b" { depends_on = ["a"] }`,
	})
	a, out, err := setupAppTest(t, Config{TasksPath: root})
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.ErrorIs(t, err, dag.ErrInvalidGraph)
	assert.ErrorContains(t, err, "cyclic dependency: a -> b -> a")
	assert.Empty(t, out.String())
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, _, err := setupAppTest(t, Config{TasksPath: filepath.Join(t.TempDir(), "missing")})
		assert.ErrorContains(t, err, "task path not found")
	})

	t.Run("duplicate across files", func(t *testing.T) {
		root := testutil.WriteFiles(t, map[string]string{
			"a.hcl":  `task "compile" {}`,
			"b.yaml": "tasks:\n  - name: compile\n",
		})
		_, _, err := setupAppTest(t, Config{TasksPath: root})
		var dup *registry.DuplicateTaskError
		require.ErrorAs(t, err, &dup)
		assert.ErrorContains(t, err, "b.yaml:2")
	})
}

func TestNewConfig(t *testing.T) {
	valid := Config{TasksPath: ".", LogLevel: "info", LogFormat: "json", Workers: 1}

	cfg, err := NewConfig(valid)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.TasksPath)

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty path", func(c *Config) { c.TasksPath = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			_, err := NewConfig(c)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
