// Package logging provides structured logging utilities for kube-console.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package,
// rendered by charmbracelet/log so log lines sit cleanly between menu output.
//
// # Usage Patterns
//
// Create the process logger once:
//
//	logger, err := logging.NewLogger(os.Stderr, logging.Options{
//	    Level: logging.LevelFromDebug(debug),
//	})
//
// Attach standard attributes:
//
//	logger.Info("listing pods",
//	    logging.Namespace("default"),
//	    logging.ResourceType("pods"))
//
// Errors that may carry API server addresses are logged with SanitizedErr,
// which redacts IP addresses.
package logging
