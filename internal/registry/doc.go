// Package registry stores task definitions keyed by name.
//
// A Registry is an explicit object owned by its caller; there is no
// process-wide task set. Registration only records names: dependency
// references are resolved later, when package dag builds the graph, which
// allows a task to depend on one declared after it.
package registry
