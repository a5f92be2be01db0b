package taskqueue

import "context"

// Result is the outcome of executing one command. It carries everything
// the queue needs to settle a task: whether the command succeeded and the
// output collected up to the point it finished or failed. Execution
// failures are expressed through Succeeded rather than an error value, so
// the queue never inspects runner-specific errors to decide task outcome.
type Result struct {
	// Succeeded is true when the command ran to completion and exited zero.
	Succeeded bool

	// Output is the combined stdout and stderr produced by the command.
	// On failure it holds whatever was collected before the failure.
	Output []byte
}

// CommandRunner executes a shell command and reports its outcome. It is
// the only external capability the queue depends on. Implementations must
// be safe to call sequentially from a single goroutine; the queue never
// invokes the runner concurrently and retains no state across calls.
type CommandRunner interface {
	Run(ctx context.Context, command string) Result
}

// RunnerFunc adapts a plain function to the CommandRunner interface.
// Useful for scripted runners in tests.
type RunnerFunc func(ctx context.Context, command string) Result

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, command string) Result {
	return f(ctx, command)
}

// Observer receives notifications as tasks execute during a run pass.
// Notifications are observational only; they are not part of the queue's
// correctness contract. Handlers are invoked synchronously from the run
// pass and must not call back into the queue.
type Observer interface {
	// TaskStarted is called immediately before a task's command executes.
	TaskStarted(priority, index int, command string)

	// TaskFinished is called after a task has settled. The task value is
	// a copy with final state, output and elapsed time.
	TaskFinished(priority, index int, task Task)
}
