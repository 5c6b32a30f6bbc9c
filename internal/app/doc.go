// Package app wires the task file loaders, the engine and the console
// output into a runnable application.
package app
