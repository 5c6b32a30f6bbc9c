package scheduler

// Scheduler hands out ready work items by registration position.
type Scheduler interface {
	// Push marks the task at position pos as ready.
	Push(pos int)
	// Pop removes and returns the ready task with the lowest position.
	// It must only be called when Len() > 0.
	Pop() int
	// Len returns the number of ready tasks.
	Len() int
}
