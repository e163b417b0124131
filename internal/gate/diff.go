package gate

import (
	"github.com/pmezard/go-difflib/difflib"
)

// AddedLines returns the lines of current that a zero-context line diff
// against previous marks as inserted, in diff order.
func AddedLines(previous, current []string) []string {
	var added []string
	m := difflib.NewMatcher(previous, current)
	for _, group := range m.GetGroupedOpCodes(0) {
		for _, op := range group {
			if op.Tag == 'r' || op.Tag == 'i' {
				added = append(added, current[op.J1:op.J2]...)
			}
		}
	}
	return added
}
