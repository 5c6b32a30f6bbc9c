package dag

import (
	"context"

	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"github.com/specialistvlad/taskgrid/internal/registry"
)

// Build constructs a complete, validated dependency graph from a registry.
// No task action is invoked. The registry may keep changing afterwards; the
// graph is a snapshot.
func Build(ctx context.Context, r *registry.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	tasks := r.Tasks()
	g := &Graph{
		nodes: make([]*node, len(tasks)),
		index: make(map[string]int, len(tasks)),
	}

	// First pass: create all nodes.
	for i, t := range tasks {
		g.nodes[i] = &node{pos: i, rank: i, task: t}
		g.index[t.Name] = i
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(g.nodes))

	// Second pass: resolve dependency names into edges.
	if err := g.link(); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	if err := g.detectCycles(); err != nil {
		return nil, err
	}
	logger.Debug("Build: Cycle detection passed.")

	return g, nil
}

// link resolves every node's declared dependency names. Repeated names in
// one list collapse into a single edge. Dependents are appended while
// walking nodes in registration order, which keeps them sorted.
func (g *Graph) link() error {
	for _, n := range g.nodes {
		seen := make(map[int]struct{}, len(n.task.DependsOn))
		for _, name := range n.task.DependsOn {
			i, ok := g.index[name]
			if !ok {
				return &UnknownDependencyError{Task: n.task.Name, Dependency: name}
			}
			if _, dup := seen[i]; dup {
				continue
			}
			seen[i] = struct{}{}

			dep := g.nodes[i]
			n.deps = append(n.deps, dep)
			dep.dependents = append(dep.dependents, n)
		}
	}
	return nil
}

// visitState is the colour of a node during depth-first traversal.
type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// detectCycles checks for circular dependencies using a depth-first search
// with three states per node. Reaching an in-progress node means the current
// path has looped back on itself; a self-dependency is the one-node case.
func (g *Graph) detectCycles() error {
	state := make([]visitState, len(g.nodes))
	var path []*node

	var visit func(n *node) error
	visit = func(n *node) error {
		state[n.pos] = inProgress
		path = append(path, n)

		for _, dep := range n.deps {
			switch state[dep.pos] {
			case inProgress:
				return cycleFrom(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		state[n.pos] = done
		return nil
	}

	for _, n := range g.nodes {
		if state[n.pos] == unvisited {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleFrom cuts the closed cycle starting at target out of the DFS path.
func cycleFrom(path []*node, target *node) error {
	start := len(path) - 1
	for start > 0 && path[start] != target {
		start--
	}

	cycle := make([]string, 0, len(path)-start+1)
	for _, n := range path[start:] {
		cycle = append(cycle, n.task.Name)
	}
	cycle = append(cycle, target.task.Name)
	return &CyclicDependencyError{Cycle: cycle}
}
