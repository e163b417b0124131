package gate

import (
	"fmt"

	"github.com/dshills/mypykaizen/internal/baseline"
	"github.com/dshills/mypykaizen/internal/checker"
)

// Observation describes the current checker run.
type Observation struct {
	Summary     checker.Summary
	ToolVersion string   // empty when the version could not be determined
	ToolArgs    []string // arguments forwarded to the checker
	Lines       []string // sanitized and sorted detail lines
}

// Evaluation is the outcome of comparing an Observation with a baseline.
type Evaluation struct {
	Regressed bool
	Baseline  baseline.Record
	Messages  []Message
	// NewLines lists detail lines absent from the previous accepted output.
	// Only set on regression when a previous output exists.
	NewLines  []string
	NeedsSave bool
}

type outcome int

const (
	outcomeInitialized outcome = iota
	outcomeIncreased
	outcomeDecreased
	outcomeUnchanged
)

// Evaluate applies the gate policy. The input record is not modified.
//
// Every increase of either count is a regression. On regression the stored
// counts and output stay as they were; otherwise the record takes the
// current counts (when lower or uninitialized) and the current output.
func Evaluate(base baseline.Record, obs Observation) Evaluation {
	ev := Evaluation{Baseline: base.Clone()}

	if obs.ToolVersion != "" && (base.ToolVersion == nil || *base.ToolVersion != obs.ToolVersion) {
		prev := "<none>"
		if base.ToolVersion != nil {
			prev = *base.ToolVersion
		}
		ev.add(KindNotice, fmt.Sprintf("checker version change - saved data from %s\ncurrent version is %s", prev, obs.ToolVersion))
		ev.Baseline.ToolVersion = baseline.String(obs.ToolVersion)
		ev.NeedsSave = true
	}

	lines := append([]string{}, obs.Lines...)

	if obs.Summary.Success {
		ev.Baseline.TotalErrors = baseline.Int(0)
		ev.Baseline.FilesInError = baseline.Int(0)
		ev.Baseline.LastFullOutput = lines
		ev.Baseline.ToolArgs = obs.ToolArgs
		ev.NeedsSave = true
		ev.add(KindImproved, "No errors!")
		return ev
	}

	total := compareCount(base.TotalErrors, obs.Summary.TotalErrors)
	files := compareCount(base.FilesInError, obs.Summary.FilesInError)
	ev.Regressed = total == outcomeIncreased || files == outcomeIncreased

	ev.applyCount("total_errors", total, base.TotalErrors, obs.Summary.TotalErrors, &ev.Baseline.TotalErrors)
	ev.applyCount("files_in_error", files, base.FilesInError, obs.Summary.FilesInError, &ev.Baseline.FilesInError)

	if ev.Regressed {
		if len(base.LastFullOutput) > 0 {
			ev.NewLines = AddedLines(base.LastFullOutput, lines)
		}
	} else {
		ev.Baseline.LastFullOutput = lines
		ev.NeedsSave = true
	}

	if ev.NeedsSave {
		ev.Baseline.ToolArgs = obs.ToolArgs
	}
	return ev
}

func compareCount(stored *int, current int) outcome {
	switch {
	case stored == nil:
		return outcomeInitialized
	case current > *stored:
		return outcomeIncreased
	case current < *stored:
		return outcomeDecreased
	default:
		return outcomeUnchanged
	}
}

func (ev *Evaluation) applyCount(name string, o outcome, stored *int, current int, dst **int) {
	switch o {
	case outcomeInitialized:
		ev.add(KindInfo, fmt.Sprintf("Initializing %s to %d", name, current))
		*dst = baseline.Int(current)
		ev.NeedsSave = true
	case outcomeIncreased:
		ev.add(KindRegression, fmt.Sprintf("ERROR - Number of %s has increased from\n%d to %d", name, *stored, current))
	case outcomeDecreased:
		text := fmt.Sprintf("YAY - Number of %s has DECREASED from\n%d to %d!!\nGOOD JOB - have a 🍪!", name, *stored, current)
		if ev.Regressed {
			// A regressing run never rewrites counts.
			text += fmt.Sprintf("\n%s stays at %d until the regression is fixed", name, *stored)
		} else {
			*dst = baseline.Int(current)
			ev.NeedsSave = true
		}
		ev.add(KindImproved, text)
	case outcomeUnchanged:
		ev.add(KindInfo, fmt.Sprintf("%s unchanged at %d", name, current))
	}
}

func (ev *Evaluation) add(kind Kind, text string) {
	ev.Messages = append(ev.Messages, Message{Kind: kind, Text: text})
}
