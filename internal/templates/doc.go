// Package templates loads the workload manifests the console creates.
//
// Three manifests are embedded in the binary: an nginx Deployment, a redis
// Deployment and a DaemonSet placed on every node. Each can be replaced by a
// file on disk through Paths. A manifest whose kind does not match its use
// fails with ErrKindMismatch.
package templates
