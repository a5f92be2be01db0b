package taskqueue

import "time"

// TaskState represents the execution state of a queued task.
type TaskState string

const (
	// StateWaiting indicates the task has been admitted but not yet executed.
	StateWaiting TaskState = "WAITING"

	// StateSuccess indicates the task executed and its command exited cleanly.
	StateSuccess TaskState = "SUCCESS"

	// StateError indicates the task executed and its command failed.
	StateError TaskState = "ERROR"
)

// String returns the string representation of the task state.
func (s TaskState) String() string {
	return string(s)
}

// IsTerminal returns true if this state represents a final state.
// A terminal task is skipped by subsequent run passes.
func (s TaskState) IsTerminal() bool {
	return s == StateSuccess || s == StateError
}

// Task is one unit of work: a shell command plus the priority it was
// admitted at. State, Output and Elapsed are written exactly once, by the
// run pass that executes the task.
type Task struct {
	// Command is the shell command to execute.
	Command string `json:"command"`

	// Priority is the bucket this task belongs to. It never changes
	// after admission.
	Priority int `json:"priority"`

	// State is the current execution state.
	State TaskState `json:"state"`

	// Output is the combined stdout and stderr captured during execution.
	// Nil until the task has executed; populated on success and error alike.
	Output []byte `json:"output,omitempty"`

	// Elapsed is the wall-clock time spent executing the command.
	// Zero until the task has executed; recorded even when the command fails.
	Elapsed time.Duration `json:"elapsed"`
}

// RunSummary is a snapshot of the queue's current state counts.
type RunSummary struct {
	Total     int `json:"total"`
	Waiting   int `json:"waiting"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
