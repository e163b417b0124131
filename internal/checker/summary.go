package checker

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnrecognizedSummary is returned when the last output line is neither a
// success nor an error-count summary.
var ErrUnrecognizedSummary = errors.New("unrecognized summary line")

var (
	successPattern = regexp.MustCompile(`^Success: `)
	foundPattern   = regexp.MustCompile(`^Found (\d+) errors? in (\d+) files?\b`)
	versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+[0-9A-Za-z.+-]*`)
)

// Summary holds the aggregate counts from the checker's final line.
type Summary struct {
	Success      bool
	TotalErrors  int
	FilesInError int
}

// ParseSummary interprets the checker's final output line.
func ParseSummary(line string) (Summary, error) {
	line = strings.TrimSpace(line)
	if successPattern.MatchString(line) {
		return Summary{Success: true}, nil
	}
	m := foundPattern.FindStringSubmatch(line)
	if m == nil {
		return Summary{}, fmt.Errorf("%w: %q", ErrUnrecognizedSummary, line)
	}
	total, err := strconv.Atoi(m[1])
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %q: %v", ErrUnrecognizedSummary, line, err)
	}
	files, err := strconv.Atoi(m[2])
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %q: %v", ErrUnrecognizedSummary, line, err)
	}
	return Summary{TotalErrors: total, FilesInError: files}, nil
}

// SplitOutput separates the summary (last line) from the detail lines.
// It reports false when the output holds no lines at all.
func SplitOutput(stdout string) (summary string, details []string, ok bool) {
	lines := splitLines(stdout)
	if len(lines) == 0 {
		return "", nil, false
	}
	return lines[len(lines)-1], lines[:len(lines)-1], true
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ParseVersion extracts the first dotted version token from version output,
// e.g. "mypy 1.8.0 (compiled: yes)" yields "1.8.0". Output without such a
// token yields its first trimmed line.
func ParseVersion(out string) string {
	out = strings.TrimSpace(out)
	if v := versionPattern.FindString(out); v != "" {
		return v
	}
	first, _, _ := strings.Cut(out, "\n")
	return strings.TrimSpace(first)
}
