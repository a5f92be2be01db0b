// Package shell executes commands through the platform shell. It is the
// production CommandRunner: the queue hands it a command string and gets
// back a success flag plus combined stdout and stderr.
package shell

import (
	"context"
	"errors"
	"os/exec"

	"cmdq/internal/taskqueue"
)

// Runner executes commands via `<Program> <Flag> <command>` and captures
// combined output. The zero value is not usable; call New for platform
// defaults, then override fields as needed.
type Runner struct {
	// Program is the shell executable, e.g. /bin/sh.
	Program string

	// Flag is the argument that makes the shell read a command string,
	// e.g. -c.
	Flag string
}

// New returns a Runner using the platform's default shell
// (/bin/sh -c on unix, cmd /C on windows).
func New() *Runner {
	program, flag := defaultShell()
	return &Runner{Program: program, Flag: flag}
}

// Run implements taskqueue.CommandRunner. A zero exit status maps to a
// succeeded result; a non-zero exit maps to a failed result carrying
// whatever output the command produced. A command that cannot be launched
// at all also reports failure, with the launch error appended to the
// output so the task record stays diagnosable.
func (r *Runner) Run(ctx context.Context, command string) taskqueue.Result {
	cmd := exec.CommandContext(ctx, r.Program, r.Flag, command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Launch failure: no process ran, surface the error text.
			out = append(out, []byte(err.Error())...)
		}
		return taskqueue.Result{Succeeded: false, Output: out}
	}
	return taskqueue.Result{Succeeded: true, Output: out}
}
