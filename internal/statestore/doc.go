// Package statestore keeps the mutable execution state of one run: the
// status of every task, the error of failed tasks, and the reason a task
// was skipped.
//
// Task definitions never carry status. A store is created at the start of a
// run, so state from a previous run can never leak into the next one.
// Every transition is validated against the task state machine and published
// under a lock, which makes a status written by the scheduling goroutine
// visible to any goroutine that observes the task afterwards.
package statestore
