package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cmdq/internal/logging"
)

// Admission bounds for task priorities. Add rejects anything outside
// [MinPriority, MaxPriority]; zero is deliberately excluded.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Sentinel errors returned by Add and Validate.
var (
	ErrPriorityOutOfRange = errors.New("priority out of range")
	ErrEmptyCommand       = errors.New("command must not be empty")
)

// TaskQueue maps priority levels to ordered buckets of tasks and executes
// them highest priority first, delegating each command to a CommandRunner.
// All methods are safe for concurrent use via an internal mutex; Run holds
// the lock for the entire pass, so the queue cannot be mutated while tasks
// are executing.
type TaskQueue struct {
	mu       sync.Mutex
	buckets  map[int][]*Task
	runner   CommandRunner
	log      *logging.Logger
	observer Observer
}

// New creates a TaskQueue that delegates command execution to runner.
// A nil logger disables diagnostic logging.
func New(runner CommandRunner, log *logging.Logger) *TaskQueue {
	if log == nil {
		log = logging.NopLogger()
	}
	return &TaskQueue{
		buckets: make(map[int][]*Task),
		runner:  runner,
		log:     log,
	}
}

// SetObserver registers an observer notified as tasks execute.
// Pass nil to remove a previously registered observer.
func (q *TaskQueue) SetObserver(o Observer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.observer = o
}

// Validate reports whether a command and priority would be admitted.
// It returns nil or the same sentinel-wrapped errors Add returns.
func Validate(command string, priority int) error {
	if command == "" {
		return ErrEmptyCommand
	}
	if priority < MinPriority || priority > MaxPriority {
		return fmt.Errorf("%w: %d (must be between %d and %d)",
			ErrPriorityOutOfRange, priority, MinPriority, MaxPriority)
	}
	return nil
}

// Add admits a task into the bucket for the given priority, creating the
// bucket on first use. Malformed input (empty command, priority outside
// the admission bounds) is a recoverable condition: the queue is left
// unmodified, the rejection is logged, and a sentinel-wrapped error is
// returned for the caller to act on.
func (q *TaskQueue) Add(command string, priority int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := Validate(command, priority); err != nil {
		q.log.Error("task rejected",
			"reason", err.Error(),
			"priority", priority,
			"command", command)
		return err
	}

	q.buckets[priority] = append(q.buckets[priority], &Task{
		Command:  command,
		Priority: priority,
		State:    StateWaiting,
	})
	q.log.Debug("task added", "priority", priority, "command", command)
	return nil
}

// Run executes every waiting task: buckets from highest priority key to
// lowest, and within each bucket in strict insertion order. Tasks already
// in a terminal state are skipped, so calling Run again after a pass
// executes nothing. When autoClear is set the queue is emptied after the
// pass.
//
// Run returns true iff every task executed in this pass succeeded; a pass
// with nothing to execute returns true. The context is handed to the
// runner for each command; the queue itself imposes no timeout and never
// interrupts a task that has started.
func (q *TaskQueue) Run(ctx context.Context, autoClear bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.log.Info("starting task processing", "tasks", q.lenLocked())
	start := time.Now()

	ok := true
	processed := 0
	for _, priority := range q.prioritiesDesc() {
		for index := range q.buckets[priority] {
			if q.buckets[priority][index].State != StateWaiting {
				continue
			}
			if !q.runOne(ctx, priority, index) {
				ok = false
			}
			processed++
		}
	}

	q.log.Info("task processing finished",
		"processed", processed,
		"elapsed", time.Since(start),
		"ok", ok)

	if autoClear {
		q.clearLocked()
	}
	return ok
}

// runOne executes the task at (priority, index) and settles its state,
// output and elapsed time. The caller must hold q.mu. Referencing a task
// that does not exist is a contract violation and panics.
//
// The underlying execution failure is fully absorbed into the task: only
// the boolean return communicates the outcome.
func (q *TaskQueue) runOne(ctx context.Context, priority, index int) bool {
	task := q.buckets[priority][index]
	q.log.Debug("executing task", "priority", priority, "command", task.Command)

	if q.observer != nil {
		q.observer.TaskStarted(priority, index, task.Command)
	}

	start := time.Now()
	res := q.runner.Run(ctx, task.Command)
	task.Elapsed = time.Since(start)
	task.Output = res.Output
	if res.Succeeded {
		task.State = StateSuccess
	} else {
		task.State = StateError
	}

	q.log.Debug("task finished",
		"state", task.State,
		"elapsed", task.Elapsed)
	if task.State == StateError {
		q.log.Debug("task output", "output", string(task.Output))
	}

	if q.observer != nil {
		q.observer.TaskFinished(priority, index, *task)
	}
	return res.Succeeded
}

// Clear discards all buckets and all tasks unconditionally.
// Safe to call on an empty queue.
func (q *TaskQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clearLocked()
}

// clearLocked discards all buckets. The caller must hold q.mu.
func (q *TaskQueue) clearLocked() {
	q.log.Debug("queue cleared", "discarded", q.lenLocked())
	q.buckets = make(map[int][]*Task)
}

// Len returns the total number of tasks currently in the queue.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

// lenLocked counts tasks across all buckets. The caller must hold q.mu.
func (q *TaskQueue) lenLocked() int {
	n := 0
	for _, bucket := range q.buckets {
		n += len(bucket)
	}
	return n
}

// Tasks returns a copy of the bucket for the given priority, in insertion
// order. Returns nil when no task was ever admitted at that priority.
func (q *TaskQueue) Tasks(priority int) []Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	bucket := q.buckets[priority]
	if bucket == nil {
		return nil
	}
	out := make([]Task, len(bucket))
	for i, task := range bucket {
		out[i] = *task
	}
	return out
}

// Summary returns a snapshot of the queue's current state counts.
func (q *TaskQueue) Summary() RunSummary {
	q.mu.Lock()
	defer q.mu.Unlock()

	var s RunSummary
	for _, bucket := range q.buckets {
		for _, task := range bucket {
			s.Total++
			switch task.State {
			case StateWaiting:
				s.Waiting++
			case StateSuccess:
				s.Succeeded++
			case StateError:
				s.Failed++
			}
		}
	}
	return s
}

// prioritiesDesc returns the bucket keys sorted highest first.
// The caller must hold q.mu.
func (q *TaskQueue) prioritiesDesc() []int {
	keys := make([]int, 0, len(q.buckets))
	for priority := range q.buckets {
		keys = append(keys, priority)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	return keys
}
