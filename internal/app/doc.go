// Package app wires application dependencies.
//
// It loads Config from the environment and builds the concrete store,
// session service and gateway client for commands to use via the Wire
// struct.
package app
