// Mypykaizen wraps mypy so that the number of type errors in a codebase can
// only go down.
//
// It runs the checker with the given arguments, shows its output, and
// compares the reported error and file counts with the baseline stored in
// .mypykaizen.json. Fewer errors tighten the baseline; more errors fail the
// run and list the newly introduced diagnostics.
//
// Usage:
//
//	mypykaizen -p mypackage           # same arguments as mypy
//	mypykaizen src/ tests/
//
// All arguments go to the checker untouched. Use .mypykaizen.yaml or the
// MYPYKAIZEN_* environment variables to select a different checker command,
// for example "dmypy run --".
package main
