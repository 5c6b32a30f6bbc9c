package dag_concurrency

import (
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/taskgrid/internal/app"
	"github.com/specialistvlad/taskgrid/internal/report"
	"github.com/specialistvlad/taskgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// runFiles writes files to a temp dir and runs every task in it with the
// given number of workers. It returns the report and the output lines.
func runFiles(t *testing.T, workers int, files map[string]string) (*report.Report, []string) {
	t.Helper()
	cfg, err := app.NewConfig(app.Config{
		TasksPath: testutil.WriteFiles(t, files),
		LogLevel:  "debug",
		LogFormat: "text",
		Workers:   workers,
	})
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	a, err := app.NewApp(context.Background(), out, &testutil.SafeBuffer{}, cfg)
	require.NoError(t, err)
	rep, _ := a.Run(context.Background())
	require.NotNil(t, rep)
	return rep, strings.Split(out.String(), "\n")
}

// lineIndex returns the position of the first line equal to s, or -1.
func lineIndex(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
