// Package engine is the public face of the task graph core. Callers register
// tasks by name, validate the resulting graph and run it; the engine wires
// the registry, the graph builder and the executor together and never knows
// where task definitions came from.
package engine
