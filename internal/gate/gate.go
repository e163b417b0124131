package gate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dshills/mypykaizen/internal/baseline"
	"github.com/dshills/mypykaizen/internal/checker"
	"github.com/dshills/mypykaizen/internal/sanitize"
)

// Exit codes chosen by the gate itself. They avoid 0, 1 and 2, which the
// checker uses.
const (
	ExitSuccess             = 0
	ExitUnrecognizedSummary = 10
	ExitRegression          = 11
)

// Gate wires the checker, the baseline store and the report output.
type Gate struct {
	Runner    checker.Runner
	Store     *baseline.Store
	Sanitizer sanitize.Sanitizer
	Stdout    io.Writer
	Color     string
	Logger    *slog.Logger
}

// Run executes one gated checker invocation and returns the exit code.
// A non-nil error means the gate itself failed (the checker could not be
// started, or the baseline could not be read or written); the exit code is
// meaningless in that case.
func (g *Gate) Run(ctx context.Context, args []string) (int, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}
	p := NewPrinter(g.Stdout, g.Color)

	res, err := g.Runner.Run(ctx, args)
	if err != nil {
		return 0, err
	}
	logger.Debug("checker finished", "exit_code", res.ExitCode, "bytes", len(res.Stdout))

	summaryLine, details, ok := checker.SplitOutput(res.Stdout)
	if (res.ExitCode != 0 && res.ExitCode != 1) || !ok {
		p.Line(KindInfo, "Not active")
		return res.ExitCode, p.Err()
	}

	summary, err := checker.ParseSummary(summaryLine)
	if err != nil {
		logger.Debug("summary not recognized", "error", err)
		p.Line(KindRegression, "Neither success nor failure for last line:")
		p.Raw(summaryLine)
		return ExitUnrecognizedSummary, p.Err()
	}

	lines := g.Sanitizer.Sanitize(details)
	sort.Strings(lines)
	logger.Debug("sanitized output", "raw", len(details), "kept", len(lines))

	rec, err := g.Store.Load()
	if err != nil {
		return 0, err
	}

	ev := Evaluate(rec, Observation{
		Summary:     summary,
		ToolVersion: g.toolVersion(ctx, logger),
		ToolArgs:    args,
		Lines:       lines,
	})

	p.Messages(ev.Messages)
	if ev.Regressed && len(ev.NewLines) > 0 {
		p.Diff(ev.NewLines)
	}

	if ev.NeedsSave {
		if err := g.Store.Save(ev.Baseline); err != nil {
			return 0, fmt.Errorf("saving baseline: %w", err)
		}
	}

	if ev.Regressed {
		return ExitRegression, p.Err()
	}
	if !summary.Success {
		p.Line(KindInfo, "DONE, but try and clean some of these problems up :)")
	}
	return ExitSuccess, p.Err()
}

func (g *Gate) toolVersion(ctx context.Context, logger *slog.Logger) string {
	v, err := g.Runner.Version(ctx)
	if err != nil {
		logger.Warn("could not determine checker version, keeping stored version", "error", err)
		return ""
	}
	return v
}
