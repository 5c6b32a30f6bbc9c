package statestore

import (
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/taskgrid/internal/task"
)

// Entry is the recorded state of a single task.
type Entry struct {
	Status task.Status
	// Err is the action error of a failed task, or the cancellation cause of
	// a task skipped because the run was stopped.
	Err error
	// BlockedBy names the dependency that caused a skip, if any.
	BlockedBy string
	Started   time.Time
	Finished  time.Time
}

// Duration returns how long the task's action ran.
func (e Entry) Duration() time.Duration {
	if e.Started.IsZero() || e.Finished.IsZero() {
		return 0
	}
	return e.Finished.Sub(e.Started)
}

// TransitionError reports an illegal state change.
type TransitionError struct {
	Task     string
	From, To task.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("task %q cannot move from %s to %s", e.Task, e.From, e.To)
}

// Store is an in-memory, thread-safe state store for a single run.
type Store struct {
	mutex   sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// New creates a store with every named task in the Pending state.
func New(names []string) *Store {
	s := &Store{
		entries: make(map[string]*Entry, len(names)),
		now:     time.Now,
	}
	for _, name := range names {
		s.entries[name] = &Entry{Status: task.Pending}
	}
	return s
}

// Start moves a task from Pending to Running.
func (s *Store) Start(name string) error {
	return s.update(name, task.Running, func(e *Entry) {
		e.Started = s.now()
	})
}

// Succeed moves a task from Running to Succeeded.
func (s *Store) Succeed(name string) error {
	return s.update(name, task.Succeeded, func(e *Entry) {
		e.Finished = s.now()
	})
}

// Fail moves a task from Running to Failed and records its error.
func (s *Store) Fail(name string, err error) error {
	return s.update(name, task.Failed, func(e *Entry) {
		e.Finished = s.now()
		e.Err = err
	})
}

// Skip moves a task from Pending to Skipped. blockedBy names the dependency
// that did not succeed; cause is set when the run itself was stopped.
func (s *Store) Skip(name, blockedBy string, cause error) error {
	return s.update(name, task.Skipped, func(e *Entry) {
		e.BlockedBy = blockedBy
		e.Err = cause
	})
}

// Status returns the current status of a task. Unknown names report Pending.
func (s *Store) Status(name string) task.Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if e, ok := s.entries[name]; ok {
		return e.Status
	}
	return task.Pending
}

// Get returns a copy of the entry for name.
func (s *Store) Get(name string) (Entry, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, ok := s.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (s *Store) update(name string, next task.Status, apply func(e *Entry)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("task %q is not tracked by this run", name)
	}
	if !e.Status.CanTransition(next) {
		return &TransitionError{Task: name, From: e.Status, To: next}
	}
	e.Status = next
	apply(e)
	return nil
}
