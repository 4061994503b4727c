// Package kubectl runs the kubectl binary as an alternative backend for the
// describe, scale and delete console actions.
//
// Commands are always built as argument vectors and executed without a
// shell. Names and replica counts are validated before a process is started,
// so invalid input never reaches kubectl.
package kubectl
