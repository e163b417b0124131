// Package checker runs the wrapped type checker and interprets its report.
//
// [ExecRunner] spawns the checker with stdin and stderr attached to the host
// streams while stdout is both forwarded and captured. [SplitOutput] and
// [ParseSummary] turn the captured text into detail lines and the aggregate
// counts from the final summary line.
package checker
