// Package gate decides whether a type checker run regressed against the
// accepted baseline.
//
// The gate compares aggregate counts (total errors and files in error), not
// individual diagnostics, so refactors that only move line numbers never
// fail a build. [Evaluate] holds the policy; [Gate.Run] drives a full
// invocation: run the checker, sanitize its output, evaluate, persist and
// pick the exit code.
//
// Exit codes:
//
//	0   no regression (including runs that still have errors)
//	10  the checker's last line was not a recognized summary
//	11  error counts increased
//
// Any other checker exit code, or empty output, passes through unchanged.
package gate
