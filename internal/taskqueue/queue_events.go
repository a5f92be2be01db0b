package taskqueue

import (
	"context"
	"sync"
	"time"

	"cmdq/internal/event"
)

// EventQueue wraps a TaskQueue and publishes events to an event bus
// whenever queue operations occur. It registers itself as the queue's
// observer, so per-task start/finish events are published as the pass
// executes. Auto-clearing a run is reported through the run-completed
// event rather than a separate queue-cleared event.
type EventQueue struct {
	mu sync.Mutex
	q  *TaskQueue

	bus *event.Bus

	processed int // tasks settled during the current run pass
}

// NewEventQueue creates an EventQueue that publishes events on the given bus.
func NewEventQueue(q *TaskQueue, bus *event.Bus) *EventQueue {
	eq := &EventQueue{q: q, bus: bus}
	q.SetObserver(eq)
	return eq
}

// Add admits a task and publishes a TaskAcceptedEvent, or a
// TaskRejectedEvent carrying the rejection reason.
func (eq *EventQueue) Add(command string, priority int) error {
	if err := eq.q.Add(command, priority); err != nil {
		eq.bus.Publish(event.NewTaskRejectedEvent(command, priority, err.Error()))
		return err
	}
	eq.bus.Publish(event.NewTaskAcceptedEvent(command, priority))
	return nil
}

// Run executes all waiting tasks and publishes a RunCompletedEvent with
// the pass totals. TaskStartedEvent and TaskFinishedEvent are published
// per task as the underlying queue executes.
func (eq *EventQueue) Run(ctx context.Context, autoClear bool) bool {
	eq.mu.Lock()
	eq.processed = 0
	eq.mu.Unlock()

	start := time.Now()
	ok := eq.q.Run(ctx, autoClear)
	elapsed := time.Since(start)

	eq.mu.Lock()
	processed := eq.processed
	eq.mu.Unlock()

	eq.bus.Publish(event.NewRunCompletedEvent(processed, elapsed, ok))
	return ok
}

// Clear discards all tasks and publishes a QueueClearedEvent with the
// number of tasks discarded.
func (eq *EventQueue) Clear() {
	discarded := eq.q.Len()
	eq.q.Clear()
	eq.bus.Publish(event.NewQueueClearedEvent(discarded))
}

// Len returns the total number of tasks currently in the queue.
func (eq *EventQueue) Len() int {
	return eq.q.Len()
}

// Tasks returns a copy of the bucket for the given priority.
func (eq *EventQueue) Tasks(priority int) []Task {
	return eq.q.Tasks(priority)
}

// Summary returns a snapshot of the queue's current state counts.
func (eq *EventQueue) Summary() RunSummary {
	return eq.q.Summary()
}

// TaskStarted implements Observer by publishing a TaskStartedEvent.
func (eq *EventQueue) TaskStarted(priority, index int, command string) {
	eq.bus.Publish(event.NewTaskStartedEvent(command, priority, index))
}

// TaskFinished implements Observer by publishing a TaskFinishedEvent.
func (eq *EventQueue) TaskFinished(priority, index int, task Task) {
	eq.mu.Lock()
	eq.processed++
	eq.mu.Unlock()

	eq.bus.Publish(event.NewTaskFinishedEvent(
		task.Command, priority, index, task.State.String(), task.Elapsed))
}
