// Package logging provides structured logging for cmdq.
//
// It wraps Go's log/slog package to produce JSON-formatted logs. The
// queue takes an injected [Logger]; no global logger state is required
// for the core to function or be tested.
//
// # Basic Usage
//
// Create a logger writing to a directory:
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Debug("task added", "priority", 5, "command", "make test")
//	logger.Info("task processing finished", "processed", 3)
//
// Pass an empty directory to log to stderr instead of a file.
//
// # Child Loggers
//
// With returns a child logger whose attributes appear on every entry:
//
//	runLogger := logger.With("pass", 1)
//
// # Testing
//
// Use [NopLogger] to discard all output:
//
//	queue := taskqueue.New(runner, logging.NopLogger())
package logging
