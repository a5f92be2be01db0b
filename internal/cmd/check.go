package cmd

import (
	"fmt"

	"cmdq/internal/taskfile"
	"cmdq/internal/taskqueue"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <taskfile>",
	Short: "Validate a task file without executing anything",
	Long: `Check parses a YAML task file and validates every entry against the
queue's admission rules (non-empty command, priority between 1 and 10).
Nothing is executed.

The exit code is non-zero when the file cannot be parsed or any entry
would be rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	entries, err := taskfile.Load(args[0])
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true

	violations := validateEntries(entries)
	for _, v := range violations {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d of %d task(s) would be rejected", len(violations), len(entries))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) OK\n", len(entries))
	return nil
}

// validateEntries runs every entry through the queue's admission check
// and returns one message per violation.
func validateEntries(entries []taskfile.Entry) []string {
	var violations []string
	for i, entry := range entries {
		if err := taskqueue.Validate(entry.Command, entry.Priority); err != nil {
			violations = append(violations, fmt.Sprintf("task %d (%q): %v", i+1, entry.Command, err))
		}
	}
	return violations
}
