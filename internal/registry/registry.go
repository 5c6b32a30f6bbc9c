package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/taskgrid/internal/task"
)

// ErrEmptyName is returned when a task is registered without a name.
var ErrEmptyName = errors.New("task name must not be empty")

// DuplicateTaskError is returned when a name is registered twice.
type DuplicateTaskError struct {
	Name string
}

func (e *DuplicateTaskError) Error() string {
	return fmt.Sprintf("task %q is already registered", e.Name)
}

// UnknownTaskError is returned when a lookup names a task that was never registered.
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("task %q is not registered", e.Name)
}

// Registry holds the task definitions of a single engine instance.
// All operations are concurrency-safe.
type Registry struct {
	mutex sync.RWMutex
	// tasks keeps definitions in registration order.
	tasks []*task.Task
	// index maps a task name to its position in tasks.
	index map[string]int
}

// New creates and initializes a new, empty Registry.
func New() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Register adds a task built from its parts. See Add.
func (r *Registry) Register(name string, dependsOn []string, action task.Action) error {
	return r.Add(task.Task{Name: name, DependsOn: dependsOn, Action: action})
}

// Add registers a copy of t. The dependency list is copied so later changes
// by the caller cannot alter the registered definition.
func (r *Registry) Add(t task.Task) error {
	if t.Name == "" {
		return ErrEmptyName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.index[t.Name]; exists {
		return &DuplicateTaskError{Name: t.Name}
	}

	t.DependsOn = append([]string(nil), t.DependsOn...)
	r.index[t.Name] = len(r.tasks)
	r.tasks = append(r.tasks, &t)
	return nil
}

// Get returns the task registered under name.
func (r *Registry) Get(name string) (*task.Task, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return nil, &UnknownTaskError{Name: name}
	}
	return r.tasks[i], nil
}

// Index returns the registration position of name, or -1 if it is unknown.
func (r *Registry) Index(name string) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if i, ok := r.index[name]; ok {
		return i
	}
	return -1
}

// Tasks returns all definitions in registration order.
func (r *Registry) Tasks() []*task.Task {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]*task.Task(nil), r.tasks...)
}

// Names returns all task names in registration order.
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, len(r.tasks))
	for i, t := range r.tasks {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.tasks)
}
