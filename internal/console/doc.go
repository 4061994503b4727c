// Package console implements the interactive kube-console menu.
//
// The console is a tree of menus whose leaves are actions. An action runs to
// completion, then the menu it was chosen from is shown again. Actions that
// modify a named resource follow the same loop: list the live resources,
// prompt for a name, validate it against the list, run the operation, and
// start over until the operator presses Enter on an empty prompt.
//
// All cluster access goes through the Cluster and Operator interfaces and all
// interaction through a Prompter, so the whole menu can be driven from tests
// with fakes.
package console
