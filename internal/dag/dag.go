package dag

import (
	"github.com/specialistvlad/taskgrid/internal/registry"
	"github.com/specialistvlad/taskgrid/internal/scheduler"
	"github.com/specialistvlad/taskgrid/internal/task"
)

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Names returns all task names in registration order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		names[i] = n.task.Name
	}
	return names
}

// Task returns the definition registered under name.
func (g *Graph) Task(name string) (*task.Task, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, &registry.UnknownTaskError{Name: name}
	}
	return g.nodes[i].task, nil
}

// Index returns the position of name in the graph, or -1 if it is absent.
// Positions run from 0 to Len()-1 in registration order.
func (g *Graph) Index(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	return -1
}

// At returns the task at position i.
func (g *Graph) At(i int) *task.Task {
	return g.nodes[i].task
}

// Rank returns the registration position, in the source registry, of the
// task at position i.
func (g *Graph) Rank(i int) int {
	return g.nodes[i].rank
}

// DependencyPositions returns the positions of the tasks that the task at
// position i depends on, in declaration order.
func (g *Graph) DependencyPositions(i int) []int {
	return positionsOf(g.nodes[i].deps)
}

// DependentPositions returns the positions of the tasks that depend on the
// task at position i, in registration order.
func (g *Graph) DependentPositions(i int) []int {
	return positionsOf(g.nodes[i].dependents)
}

// Dependencies returns the names of the tasks that name depends on.
func (g *Graph) Dependencies(name string) ([]string, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, &registry.UnknownTaskError{Name: name}
	}
	return namesOf(g.nodes[i].deps), nil
}

// Dependents returns the names of the tasks that depend on name.
func (g *Graph) Dependents(name string) ([]string, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, &registry.UnknownTaskError{Name: name}
	}
	return namesOf(g.nodes[i].dependents), nil
}

// Order returns a topological order of the graph. Among tasks whose
// dependencies have all been placed, the one registered first comes next.
func (g *Graph) Order() []string {
	pending := make([]int, len(g.nodes))
	ready := scheduler.New()
	for _, n := range g.nodes {
		pending[n.pos] = len(n.deps)
		if pending[n.pos] == 0 {
			ready.Push(n.pos)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for ready.Len() > 0 {
		n := g.nodes[ready.Pop()]
		order = append(order, n.task.Name)
		for _, dependent := range n.dependents {
			pending[dependent.pos]--
			if pending[dependent.pos] == 0 {
				ready.Push(dependent.pos)
			}
		}
	}
	return order
}

// Closure returns the sub-graph made of the given targets and everything
// they transitively depend on. Without targets the graph itself is returned.
func (g *Graph) Closure(targets ...string) (*Graph, error) {
	if len(targets) == 0 {
		return g, nil
	}

	keep := make([]bool, len(g.nodes))
	var mark func(n *node)
	mark = func(n *node) {
		if keep[n.pos] {
			return
		}
		keep[n.pos] = true
		for _, dep := range n.deps {
			mark(dep)
		}
	}
	for _, name := range targets {
		i, ok := g.index[name]
		if !ok {
			return nil, &registry.UnknownTaskError{Name: name}
		}
		mark(g.nodes[i])
	}

	sub := &Graph{index: make(map[string]int)}
	remap := make([]*node, len(g.nodes))
	for _, n := range g.nodes {
		if !keep[n.pos] {
			continue
		}
		c := &node{pos: len(sub.nodes), rank: n.rank, task: n.task}
		remap[n.pos] = c
		sub.index[n.task.Name] = c.pos
		sub.nodes = append(sub.nodes, c)
	}
	for _, n := range g.nodes {
		c := remap[n.pos]
		if c == nil {
			continue
		}
		for _, dep := range n.deps {
			c.deps = append(c.deps, remap[dep.pos])
		}
		for _, dependent := range n.dependents {
			if d := remap[dependent.pos]; d != nil {
				c.dependents = append(c.dependents, d)
			}
		}
	}
	return sub, nil
}

func positionsOf(nodes []*node) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.pos
	}
	return out
}

func namesOf(nodes []*node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.task.Name
	}
	return out
}
