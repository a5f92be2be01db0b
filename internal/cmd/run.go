package cmd

import (
	"fmt"
	"os"

	"cmdq/internal/config"
	"cmdq/internal/event"
	"cmdq/internal/logging"
	"cmdq/internal/shell"
	"cmdq/internal/taskfile"
	"cmdq/internal/taskqueue"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run <taskfile>",
	Short: "Execute the tasks in a task file",
	Long: `Run loads tasks from a YAML task file, admits them into the queue and
executes every waiting task, highest priority first. Within one priority,
tasks run in the order they appear in the file.

Tasks that fail admission (priority outside 1-10, empty command) are
reported and skipped; the rest of the file still runs.

Examples:
  # Run all tasks in tasks.yaml
  cmdq run tasks.yaml

  # Run and discard the queue afterwards
  cmdq run tasks.yaml --auto-clear

  # Use a different shell
  cmdq run tasks.yaml --shell /bin/bash --shell-flag -c`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var (
	runAutoClear bool
	runShell     string
	runShellFlag string
	runQuiet     bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runAutoClear, "auto-clear", false, "Clear the queue after the run")
	runCmd.Flags().StringVar(&runShell, "shell", "", "Shell program used to execute commands")
	runCmd.Flags().StringVar(&runShellFlag, "shell-flag", "", "Flag that makes the shell read a command string")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Suppress per-task progress output")
}

// Styles for terminal output. Rendering falls back to plain text when
// stdout is not a terminal.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	entries, err := taskfile.Load(args[0])
	if err != nil {
		return err
	}

	// Parse/config errors above are usage problems; anything past this
	// point is an execution outcome, not a reason to print usage.
	cmd.SilenceUsage = true

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	runner := shell.New()
	if program := firstNonEmpty(runShell, cfg.Shell.Program); program != "" {
		runner.Program = program
	}
	if flag := firstNonEmpty(runShellFlag, cfg.Shell.Flag); flag != "" {
		runner.Flag = flag
	}

	bus := event.NewBus()
	queue := taskqueue.NewEventQueue(taskqueue.New(runner, logger), bus)

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	report := &runReport{}
	subscribeReport(bus, report, styled, runQuiet)

	for _, entry := range entries {
		// Rejections are recoverable; the event subscriber reports them.
		_ = queue.Add(entry.Command, entry.Priority)
	}

	ok := queue.Run(cmd.Context(), runAutoClear || cfg.Run.AutoClear)

	report.printSummary(os.Stdout, styled)
	if !ok {
		return fmt.Errorf("%d task(s) failed", report.failed)
	}
	return nil
}

// newLogger builds the diagnostic logger from config. Logging can be
// disabled entirely; level and destination come from the logging section.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
}

// runReport accumulates the outcome of one run pass from bus events.
type runReport struct {
	rejected  int
	processed int
	failed    int
	elapsed   string
}

// subscribeReport wires the report (and, unless quiet, per-task progress
// lines) to the queue's event stream.
func subscribeReport(bus *event.Bus, report *runReport, styled, quiet bool) {
	bus.Subscribe(event.TypeTaskRejected, func(e event.Event) {
		re := e.(event.TaskRejectedEvent)
		report.rejected++
		fmt.Fprintf(os.Stderr, "rejected %q: %s\n", re.Command, re.Reason)
	})

	bus.Subscribe(event.TypeTaskFinished, func(e event.Event) {
		fe := e.(event.TaskFinishedEvent)
		report.processed++
		if fe.State != taskqueue.StateSuccess.String() {
			report.failed++
		}
		if quiet {
			return
		}
		state := fe.State
		if styled {
			if fe.State == taskqueue.StateSuccess.String() {
				state = successStyle.Render(state)
			} else {
				state = errorStyle.Render(state)
			}
		}
		detail := fmt.Sprintf("[p%d] %s (%.2fs)", fe.Priority, fe.Command, fe.Elapsed.Seconds())
		if styled {
			detail = dimStyle.Render(detail)
		}
		fmt.Printf("%s %s\n", state, detail)
	})

	bus.Subscribe(event.TypeRunCompleted, func(e event.Event) {
		ce := e.(event.RunCompletedEvent)
		report.elapsed = fmt.Sprintf("%.2fs", ce.Elapsed.Seconds())
	})
}

// printSummary writes the pass totals.
func (r *runReport) printSummary(w *os.File, styled bool) {
	succeeded := r.processed - r.failed
	line := fmt.Sprintf("%d task(s) processed in %s: %d succeeded, %d failed",
		r.processed, r.elapsed, succeeded, r.failed)
	if r.rejected > 0 {
		line += fmt.Sprintf(", %d rejected", r.rejected)
	}
	if styled {
		if r.failed == 0 {
			line = successStyle.Render(line)
		} else {
			line = errorStyle.Render(line)
		}
	}
	fmt.Fprintln(w, line)
}

// firstNonEmpty returns the first non-empty string, flag values taking
// precedence over config.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
