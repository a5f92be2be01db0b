package taskqueue

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedRunner returns canned results per command and records the order
// commands were executed in. Commands without a scripted result succeed
// with output "ok".
type scriptedRunner struct {
	results  map[string]Result
	executed []string
}

func (r *scriptedRunner) Run(_ context.Context, command string) Result {
	r.executed = append(r.executed, command)
	if res, ok := r.results[command]; ok {
		return res
	}
	return Result{Succeeded: true, Output: []byte("ok")}
}

func newTestQueue() (*TaskQueue, *scriptedRunner) {
	runner := &scriptedRunner{results: make(map[string]Result)}
	return New(runner, nil), runner
}

func TestAddAcceptsFullPriorityRange(t *testing.T) {
	q, _ := newTestQueue()

	for p := MinPriority; p <= MaxPriority; p++ {
		if err := q.Add("echo hi", p); err != nil {
			t.Errorf("Add(priority=%d) returned error: %v", p, err)
		}
	}
	if got, want := q.Len(), MaxPriority-MinPriority+1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
}

func TestAddRejectsPriorityOutOfRange(t *testing.T) {
	q, _ := newTestQueue()

	for _, p := range []int{0, 11, -1, 100} {
		err := q.Add("echo hi", p)
		if !errors.Is(err, ErrPriorityOutOfRange) {
			t.Errorf("Add(priority=%d) error = %v, want ErrPriorityOutOfRange", p, err)
		}
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("queue should be unchanged after rejections, Len() = %d", got)
	}
}

func TestAddRejectsEmptyCommand(t *testing.T) {
	q, _ := newTestQueue()

	if err := q.Add("", 5); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("Add with empty command error = %v, want ErrEmptyCommand", err)
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("queue should be unchanged after rejection, Len() = %d", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		priority int
		wantErr  error
	}{
		{"valid", "echo hi", 5, nil},
		{"lowest", "echo hi", MinPriority, nil},
		{"highest", "echo hi", MaxPriority, nil},
		{"zero priority", "echo hi", 0, ErrPriorityOutOfRange},
		{"too high", "echo hi", 11, ErrPriorityOutOfRange},
		{"empty command", "", 5, ErrEmptyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.command, tt.priority)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunExecutesBucketInInsertionOrder(t *testing.T) {
	q, runner := newTestQueue()

	if err := q.Add("first", 5); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("second", 5); err != nil {
		t.Fatal(err)
	}

	q.Run(context.Background(), false)

	want := []string{"first", "second"}
	if len(runner.executed) != len(want) {
		t.Fatalf("executed %d commands, want %d", len(runner.executed), len(want))
	}
	for i, cmd := range want {
		if runner.executed[i] != cmd {
			t.Errorf("executed[%d] = %q, want %q", i, runner.executed[i], cmd)
		}
	}
}

func TestRunExecutesBucketsHighestFirst(t *testing.T) {
	q, runner := newTestQueue()

	// Insertion order deliberately disagrees with priority order.
	if err := q.Add("low-a", 1); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("high", 10); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("low-b", 1); err != nil {
		t.Fatal(err)
	}

	q.Run(context.Background(), false)

	want := []string{"high", "low-a", "low-b"}
	for i, cmd := range want {
		if runner.executed[i] != cmd {
			t.Errorf("executed[%d] = %q, want %q", i, runner.executed[i], cmd)
		}
	}
}

func TestRunSuccessSettlesTask(t *testing.T) {
	q, runner := newTestQueue()
	runner.results["emit success"] = Result{Succeeded: true, Output: []byte("OK")}

	if err := q.Add("emit success", 5); err != nil {
		t.Fatal(err)
	}

	if ok := q.Run(context.Background(), false); !ok {
		t.Fatal("Run() = false, want true")
	}

	tasks := q.Tasks(5)
	if len(tasks) != 1 {
		t.Fatalf("Tasks(5) returned %d tasks, want 1", len(tasks))
	}
	if tasks[0].State != StateSuccess {
		t.Errorf("State = %s, want %s", tasks[0].State, StateSuccess)
	}
	if got := string(tasks[0].Output); got != "OK" {
		t.Errorf("Output = %q, want %q", got, "OK")
	}
}

func TestRunFailureSettlesTask(t *testing.T) {
	q, runner := newTestQueue()
	runner.results["emit failure"] = Result{Succeeded: false, Output: []byte("boom")}

	if err := q.Add("emit failure", 5); err != nil {
		t.Fatal(err)
	}

	if ok := q.Run(context.Background(), false); ok {
		t.Fatal("Run() = true, want false")
	}

	tasks := q.Tasks(5)
	if tasks[0].State != StateError {
		t.Errorf("State = %s, want %s", tasks[0].State, StateError)
	}
	if got := string(tasks[0].Output); got != "boom" {
		t.Errorf("Output = %q, want %q", got, "boom")
	}
}

func TestRunDoesNotAbortOnFailure(t *testing.T) {
	q, runner := newTestQueue()
	runner.results["fails"] = Result{Succeeded: false, Output: []byte("boom")}

	if err := q.Add("fails", 10); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("succeeds", 5); err != nil {
		t.Fatal(err)
	}

	if ok := q.Run(context.Background(), false); ok {
		t.Fatal("Run() = true, want false")
	}
	if len(runner.executed) != 2 {
		t.Fatalf("executed %d commands, want 2 (failure must not abort the pass)", len(runner.executed))
	}
	if got := q.Tasks(5)[0].State; got != StateSuccess {
		t.Errorf("later task State = %s, want %s", got, StateSuccess)
	}
}

func TestRunRecordsElapsedOnError(t *testing.T) {
	runner := RunnerFunc(func(context.Context, string) Result {
		time.Sleep(time.Millisecond)
		return Result{Succeeded: false, Output: []byte("boom")}
	})
	q := New(runner, nil)

	if err := q.Add("slow failure", 3); err != nil {
		t.Fatal(err)
	}
	q.Run(context.Background(), false)

	if got := q.Tasks(3)[0].Elapsed; got <= 0 {
		t.Errorf("Elapsed = %v, want > 0 even when the command fails", got)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	q, runner := newTestQueue()
	runner.results["fails"] = Result{Succeeded: false, Output: []byte("boom")}

	if err := q.Add("fails", 5); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("succeeds", 5); err != nil {
		t.Fatal(err)
	}

	if ok := q.Run(context.Background(), false); ok {
		t.Fatal("first Run() = true, want false")
	}

	// A second pass finds no waiting tasks: nothing re-executes, and the
	// empty pass is vacuously true regardless of earlier failures.
	if ok := q.Run(context.Background(), false); !ok {
		t.Fatal("second Run() = false, want true")
	}
	if len(runner.executed) != 2 {
		t.Fatalf("executed %d commands across both passes, want 2", len(runner.executed))
	}
}

func TestRunEmptyQueueReturnsTrue(t *testing.T) {
	q, _ := newTestQueue()
	if ok := q.Run(context.Background(), false); !ok {
		t.Fatal("Run() on empty queue = false, want true")
	}
}

func TestRunAutoClearEmptiesQueue(t *testing.T) {
	q, _ := newTestQueue()

	if err := q.Add("echo hi", 5); err != nil {
		t.Fatal(err)
	}
	if ok := q.Run(context.Background(), true); !ok {
		t.Fatal("Run() = false, want true")
	}

	if got := q.Len(); got != 0 {
		t.Errorf("Len() after auto-clear = %d, want 0", got)
	}
	if got := q.Tasks(5); got != nil {
		t.Errorf("Tasks(5) after auto-clear = %v, want nil", got)
	}
}

func TestRunKeepsCompletedTasksWithoutAutoClear(t *testing.T) {
	q, _ := newTestQueue()

	if err := q.Add("echo hi", 5); err != nil {
		t.Fatal(err)
	}
	q.Run(context.Background(), false)

	if got := q.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1 (completed tasks stay inspectable)", got)
	}
}

func TestClearWithoutRun(t *testing.T) {
	q, _ := newTestQueue()

	if err := q.Add("echo hi", 5); err != nil {
		t.Fatal(err)
	}
	q.Clear()

	if got := q.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}

	// Clearing an already empty queue is fine.
	q.Clear()
}

func TestTasksReturnsCopies(t *testing.T) {
	q, _ := newTestQueue()

	if err := q.Add("echo hi", 5); err != nil {
		t.Fatal(err)
	}

	tasks := q.Tasks(5)
	tasks[0].State = StateError
	tasks[0].Command = "mutated"

	fresh := q.Tasks(5)
	if fresh[0].State != StateWaiting {
		t.Errorf("State = %s after mutating a snapshot, want %s", fresh[0].State, StateWaiting)
	}
	if fresh[0].Command != "echo hi" {
		t.Errorf("Command = %q after mutating a snapshot, want %q", fresh[0].Command, "echo hi")
	}
}

func TestTasksUnknownPriorityIsNil(t *testing.T) {
	q, _ := newTestQueue()
	if got := q.Tasks(7); got != nil {
		t.Fatalf("Tasks(7) = %v, want nil", got)
	}
}

func TestSummary(t *testing.T) {
	q, runner := newTestQueue()
	runner.results["fails"] = Result{Succeeded: false, Output: []byte("boom")}

	if err := q.Add("fails", 5); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("succeeds", 5); err != nil {
		t.Fatal(err)
	}
	if err := q.Add("waits", 1); err != nil {
		t.Fatal(err)
	}

	before := q.Summary()
	if before.Total != 3 || before.Waiting != 3 {
		t.Fatalf("Summary before run = %+v, want Total=3 Waiting=3", before)
	}

	q.Run(context.Background(), false)

	after := q.Summary()
	if after.Total != 3 || after.Waiting != 0 || after.Succeeded != 2 || after.Failed != 1 {
		t.Fatalf("Summary after run = %+v, want Total=3 Waiting=0 Succeeded=2 Failed=1", after)
	}
}

func TestNilLoggerUsesNop(t *testing.T) {
	q := New(RunnerFunc(func(context.Context, string) Result {
		return Result{Succeeded: true}
	}), nil)

	if err := q.Add("echo hi", 5); err != nil {
		t.Fatal(err)
	}
	if ok := q.Run(context.Background(), false); !ok {
		t.Fatal("Run() = false, want true")
	}
}
