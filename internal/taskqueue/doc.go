// Package taskqueue provides a priority-ordered command execution queue.
//
// Clients admit tasks (a shell command plus an integer priority between
// [MinPriority] and [MaxPriority]) and run them in descending priority
// order. Ties within one priority bucket are broken by insertion order.
// Each task records its outcome, captured output, and elapsed time.
//
// The core type is [TaskQueue]. Command execution is delegated to an
// injected [CommandRunner], so the queue itself never spawns processes;
// tests substitute a scripted runner. Execution is strictly serial: a run
// pass executes one task at a time and blocks until every waiting task
// has finished.
//
// Usage:
//
//	queue := taskqueue.New(shell.New(), logger)
//
//	if err := queue.Add("make build", 10); err != nil {
//	    // rejected: priority out of range or empty command
//	}
//	_ = queue.Add("make test", 5)
//
//	ok := queue.Run(ctx, false)
//	// ok is true iff every executed task succeeded; per-task state,
//	// output and elapsed time remain inspectable via Tasks and Summary.
package taskqueue
