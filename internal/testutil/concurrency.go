package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/specialistvlad/taskgrid/internal/registry"
	"github.com/specialistvlad/taskgrid/internal/task"
	"github.com/stretchr/testify/require"
)

// ExecutionRecord holds the logical start and end ticks of one invocation.
// Ticks come from a counter shared by all actions of a Recorder, so they
// order events across goroutines without relying on wall-clock time.
type ExecutionRecord struct {
	Start int
	End   int
}

// Recorder builds task actions that record every invocation. It is safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	tick    int
	calls   []string
	records map[string][]ExecutionRecord
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{records: make(map[string][]ExecutionRecord)}
}

// Action returns an action for name that records its invocation, runs fn
// (if any) and returns fn's error.
func (r *Recorder) Action(name string, fn func(ctx context.Context) error) task.Action {
	return func(ctx context.Context) error {
		r.mu.Lock()
		r.tick++
		start := r.tick
		r.calls = append(r.calls, name)
		r.mu.Unlock()

		var err error
		if fn != nil {
			err = fn(ctx)
		}

		r.mu.Lock()
		r.tick++
		r.records[name] = append(r.records[name], ExecutionRecord{Start: start, End: r.tick})
		r.mu.Unlock()
		return err
	}
}

// Fails returns an action body that always returns err.
func Fails(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

// Calls returns task names in invocation order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many times the action of name was invoked.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records[name])
}

// Records returns the invocations of name.
func (r *Recorder) Records(name string) []ExecutionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ExecutionRecord(nil), r.records[name]...)
}

// Reset forgets all recorded invocations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tick = 0
	r.calls = nil
	r.records = make(map[string][]ExecutionRecord)
}

// SampleNames lists the sample build's tasks in registration order.
var SampleNames = []string{"compile", "testCompile", "test", "build"}

// RegisterSample registers the compile/testCompile/test/build example with
// recording actions. Entries in fail make the named task's action fail.
func RegisterSample(t *testing.T, reg *registry.Registry, rec *Recorder, fail map[string]error) {
	t.Helper()
	deps := map[string][]string{
		"testCompile": {"compile"},
		"test":        {"compile", "testCompile"},
		"build":       {"test"},
	}
	for _, name := range SampleNames {
		var fn func(context.Context) error
		if err, ok := fail[name]; ok {
			fn = Fails(err)
		}
		require.NoError(t, reg.Register(name, deps[name], rec.Action(name, fn)))
	}
}
