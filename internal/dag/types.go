package dag

import "github.com/specialistvlad/taskgrid/internal/task"

// Graph is a validated set of tasks and their dependency edges. It is
// immutable after Build and therefore safe for concurrent reads.
type Graph struct {
	// nodes stores all nodes in registration order.
	nodes []*node
	// index maps a task name to its position in nodes.
	index map[string]int
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using names or
// positions), not by direct struct manipulation.
type node struct {
	// pos is the node's position in Graph.nodes.
	pos int
	// rank is the task's registration position in the source registry. It
	// differs from pos only in graphs produced by Closure.
	rank int
	task *task.Task
	// deps holds the nodes this node depends on, in declaration order.
	deps []*node
	// dependents holds the nodes that depend on this node, in registration order.
	dependents []*node
}
