package k8s

import "time"

const (
	// Default performance settings
	DefaultQPSLimit   = 20.0
	DefaultBurstLimit = 30
	DefaultTimeout    = 30 // seconds

	// DefaultNamespace is used when neither the configuration nor the
	// kubeconfig context names one.
	DefaultNamespace = "default"

	// Exec defaults
	DefaultExecPollInterval = time.Second
	DefaultExecTimeout      = 60 * time.Second
	DefaultExecCommand      = "echo This message goes to stderr; echo This message goes to stdout"

	// Prefixes applied to every line of exec output.
	StdoutPrefix = "STDOUT: "
	StderrPrefix = "STDERR: "

	// describeConcurrency bounds parallel event lookups in DescribePods.
	describeConcurrency = 4
)

// DefaultExecShell is the command started in the container; queued commands
// are written to its stdin.
var DefaultExecShell = []string{"/bin/sh"}

// Operation names used for safety checks, logs, spans and metrics.
const (
	OperationList     = "list"
	OperationDescribe = "describe"
	OperationCreate   = "create"
	OperationDeploy   = "deploy"
	OperationScale    = "scale"
	OperationDelete   = "delete"
	OperationExec     = "exec"
)
