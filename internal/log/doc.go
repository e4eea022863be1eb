// Package log provides the application logger, built on top of the standard
// slog package.
//
// The CompactHandler wraps any slog.Handler and shortens oversized string
// attributes before they reach it. Trace files embed whole resource bodies
// and project descriptions carry raw markup; logging either verbatim would
// flood the terminal.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("resource", "content", body) // truncated past MaxValueLen
package log
