package task

import "fmt"

// Status represents the execution state of a task within one run.
type Status int32

const (
	// Pending indicates the task is waiting for its dependencies.
	Pending Status = iota
	// Running indicates the task's action is currently executing.
	Running
	// Succeeded indicates the action returned without error.
	Succeeded
	// Failed indicates the action returned an error.
	Failed
	// Skipped indicates the action never ran because a dependency did not
	// succeed or the run was cancelled.
	Skipped
)

var statusNames = [...]string{
	Pending:   "pending",
	Running:   "running",
	Succeeded: "succeeded",
	Failed:    "failed",
	Skipped:   "skipped",
}

// String returns the lower-case name of the status.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int32(s))
	}
	return statusNames[s]
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed || s == Skipped
}

// CanTransition reports whether moving from s to next is a legal step:
// Pending → Running → {Succeeded, Failed}, or Pending → Skipped.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case Pending:
		return next == Running || next == Skipped
	case Running:
		return next == Succeeded || next == Failed
	default:
		return false
	}
}

// MarshalText lets statuses render as names in JSON reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown task status %q", text)
}
