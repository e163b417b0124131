package sanitize

import (
	"os"
	"regexp"
	"strings"
)

// statusLines are emitted by the checker daemon and never describe a diagnostic.
var statusLines = map[string]bool{
	"Daemon started": true,
	"Daemon stopped": true,
}

// restartPrefix covers "Restarting: configuration changed", "Restarting: plugins changed", etc.
const restartPrefix = "Restarting: "

// stubNote matches notes reported against .pyi stub files, with optional
// column (and end position) numbers after the line number.
var stubNote = regexp.MustCompile(`^.+?\.pyi(?::\d+)+: note: `)

// Sanitizer filters and normalizes checker output lines.
type Sanitizer struct {
	// Separator is the native path separator. When it is not '/', every
	// occurrence is rewritten to '/'.
	Separator rune
}

// New returns a Sanitizer for the host platform.
func New() Sanitizer {
	return Sanitizer{Separator: os.PathSeparator}
}

// Sanitize returns the lines that represent diagnostics, in their input
// order, with path separators normalized. The result is never nil.
func (s Sanitizer) Sanitize(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = s.normalize(line)
		if IsStatusLine(line) || IsStubNote(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (s Sanitizer) normalize(line string) string {
	if s.Separator == 0 || s.Separator == '/' {
		return line
	}
	return strings.ReplaceAll(line, string(s.Separator), "/")
}

// IsStatusLine reports whether line is a daemon session status message.
func IsStatusLine(line string) bool {
	line = strings.TrimSpace(line)
	return statusLines[line] || strings.HasPrefix(line, restartPrefix)
}

// IsStubNote reports whether line is a note diagnostic located in a stub file.
func IsStubNote(line string) bool {
	return stubNote.MatchString(line)
}
