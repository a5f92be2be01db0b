package event

import "time"

// Event type identifiers. Convention: "category.action".
const (
	TypeTaskAccepted = "task.accepted"
	TypeTaskRejected = "task.rejected"
	TypeTaskStarted  = "task.started"
	TypeTaskFinished = "task.finished"
	TypeQueueCleared = "queue.cleared"
	TypeRunCompleted = "queue.run_completed"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent stamped with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// TaskAcceptedEvent is emitted when a task passes admission and joins
// its priority bucket.
type TaskAcceptedEvent struct {
	baseEvent
	Command  string
	Priority int
}

// NewTaskAcceptedEvent creates a TaskAcceptedEvent.
func NewTaskAcceptedEvent(command string, priority int) TaskAcceptedEvent {
	return TaskAcceptedEvent{
		baseEvent: newBaseEvent(TypeTaskAccepted),
		Command:   command,
		Priority:  priority,
	}
}

// TaskRejectedEvent is emitted when a task fails admission.
type TaskRejectedEvent struct {
	baseEvent
	Command  string
	Priority int
	Reason   string // human-readable rejection reason
}

// NewTaskRejectedEvent creates a TaskRejectedEvent.
func NewTaskRejectedEvent(command string, priority int, reason string) TaskRejectedEvent {
	return TaskRejectedEvent{
		baseEvent: newBaseEvent(TypeTaskRejected),
		Command:   command,
		Priority:  priority,
		Reason:    reason,
	}
}

// TaskStartedEvent is emitted immediately before a task's command executes.
type TaskStartedEvent struct {
	baseEvent
	Command  string
	Priority int
	Index    int // position within the priority bucket
}

// NewTaskStartedEvent creates a TaskStartedEvent.
func NewTaskStartedEvent(command string, priority, index int) TaskStartedEvent {
	return TaskStartedEvent{
		baseEvent: newBaseEvent(TypeTaskStarted),
		Command:   command,
		Priority:  priority,
		Index:     index,
	}
}

// TaskFinishedEvent is emitted after a task has settled into a terminal
// state.
type TaskFinishedEvent struct {
	baseEvent
	Command  string
	Priority int
	Index    int
	State    string // "SUCCESS" or "ERROR"
	Elapsed  time.Duration
}

// NewTaskFinishedEvent creates a TaskFinishedEvent.
func NewTaskFinishedEvent(command string, priority, index int, state string, elapsed time.Duration) TaskFinishedEvent {
	return TaskFinishedEvent{
		baseEvent: newBaseEvent(TypeTaskFinished),
		Command:   command,
		Priority:  priority,
		Index:     index,
		State:     state,
		Elapsed:   elapsed,
	}
}

// QueueClearedEvent is emitted when the queue is cleared.
type QueueClearedEvent struct {
	baseEvent
	Discarded int // number of tasks discarded
}

// NewQueueClearedEvent creates a QueueClearedEvent.
func NewQueueClearedEvent(discarded int) QueueClearedEvent {
	return QueueClearedEvent{
		baseEvent: newBaseEvent(TypeQueueCleared),
		Discarded: discarded,
	}
}

// RunCompletedEvent is emitted when a run pass finishes.
type RunCompletedEvent struct {
	baseEvent
	Processed int           // tasks executed in this pass
	Elapsed   time.Duration // total wall-clock time of the pass
	OK        bool          // true iff every executed task succeeded
}

// NewRunCompletedEvent creates a RunCompletedEvent.
func NewRunCompletedEvent(processed int, elapsed time.Duration, ok bool) RunCompletedEvent {
	return RunCompletedEvent{
		baseEvent: newBaseEvent(TypeRunCompleted),
		Processed: processed,
		Elapsed:   elapsed,
		OK:        ok,
	}
}
