// Package cli wires the cobra root command for the mypykaizen binary.
//
// The root command disables flag parsing so that every argument is forwarded
// to the wrapped checker. It reads configuration, builds the logger, the
// checker runner and the baseline store, runs the gate and maps the outcome
// to a process exit code.
package cli
