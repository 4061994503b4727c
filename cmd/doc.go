// Package cmd provides the command-line interface for kube-console.
//
// This package implements a Cobra-based CLI with the following subcommands:
//   - console: Starts the interactive console (default when no subcommand is given)
//   - version: Displays the application version
//   - self-update: Updates the binary to the latest version from GitHub releases
//
// Command Structure:
//
//	kube-console [flags]                 # Starts the console (default)
//	kube-console console [flags]         # Explicitly starts the console
//	kube-console version                 # Shows version information
//	kube-console self-update             # Updates to latest release
//
// Console configuration is layered: built-in defaults, an optional YAML file
// given with --config, KUBE_CONSOLE_* environment variables, and finally any
// flag set explicitly on the command line.
//
// Examples:
//
//	kube-console console --namespace apps --read-only
//	kube-console console --backend kubectl --kubectl-path /usr/local/bin/kubectl
//	KUBE_CONSOLE_DRY_RUN=true kube-console
package cmd
