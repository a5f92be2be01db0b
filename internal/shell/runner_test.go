package shell

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix shell semantics")
	}
}

func TestRunSuccess(t *testing.T) {
	skipOnWindows(t)

	res := New().Run(context.Background(), "echo hello")
	if !res.Succeeded {
		t.Fatalf("Run(echo) Succeeded = false, output: %s", res.Output)
	}
	if got := strings.TrimSpace(string(res.Output)); got != "hello" {
		t.Errorf("Output = %q, want %q", got, "hello")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	skipOnWindows(t)

	res := New().Run(context.Background(), "exit 3")
	if res.Succeeded {
		t.Fatal("Run(exit 3) Succeeded = true, want false")
	}
}

func TestRunCapturesCombinedOutput(t *testing.T) {
	skipOnWindows(t)

	res := New().Run(context.Background(), "echo out; echo err 1>&2; exit 1")
	if res.Succeeded {
		t.Fatal("Succeeded = true, want false")
	}
	out := string(res.Output)
	if !strings.Contains(out, "out") {
		t.Errorf("Output %q missing stdout content", out)
	}
	if !strings.Contains(out, "err") {
		t.Errorf("Output %q missing stderr content", out)
	}
}

func TestRunLaunchFailure(t *testing.T) {
	r := &Runner{Program: "/nonexistent/shell", Flag: "-c"}

	res := r.Run(context.Background(), "echo hi")
	if res.Succeeded {
		t.Fatal("Succeeded = true for unlaunchable shell, want false")
	}
	if len(res.Output) == 0 {
		t.Error("Output is empty, want the launch error text")
	}
}

func TestRunContextCancellation(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := New().Run(ctx, "sleep 10")
	if res.Succeeded {
		t.Fatal("Succeeded = true for cancelled command, want false")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("command ran %v after cancellation, want prompt termination", elapsed)
	}
}

func TestDefaultShell(t *testing.T) {
	r := New()
	if r.Program == "" || r.Flag == "" {
		t.Fatalf("New() = %+v, want platform shell defaults", r)
	}
}
