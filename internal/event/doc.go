// Package event provides a synchronous pub-sub bus and the event types
// published by the task queue.
//
// Events are purely observational: the queue's correctness never depends
// on a subscriber being present. The CLI subscribes to render progress;
// tests subscribe to assert on queue behavior from the outside.
//
// Usage:
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeTaskFinished, func(e event.Event) {
//	    fe := e.(event.TaskFinishedEvent)
//	    fmt.Println(fe.Command, fe.State, fe.Elapsed)
//	})
package event
