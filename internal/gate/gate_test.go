package gate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/mypykaizen/internal/baseline"
	"github.com/dshills/mypykaizen/internal/checker"
	"github.com/dshills/mypykaizen/internal/logging"
	"github.com/dshills/mypykaizen/internal/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	result     checker.Result
	runErr     error
	version    string
	versionErr error
	gotArgs    []string
}

func (f *fakeRunner) Run(ctx context.Context, args []string) (checker.Result, error) {
	f.gotArgs = args
	return f.result, f.runErr
}

func (f *fakeRunner) Version(ctx context.Context) (string, error) {
	return f.version, f.versionErr
}

type harness struct {
	runner *fakeRunner
	store  *baseline.Store
	out    *bytes.Buffer
	gate   *Gate
}

func newHarness(t *testing.T, exitCode int, stdout string) *harness {
	t.Helper()
	h := &harness{
		runner: &fakeRunner{result: checker.Result{ExitCode: exitCode, Stdout: stdout}, version: "1.8.0"},
		store:  baseline.NewStore(filepath.Join(t.TempDir(), baseline.DefaultFileName), logging.Discard()),
		out:    &bytes.Buffer{},
	}
	h.gate = &Gate{
		Runner:    h.runner,
		Store:     h.store,
		Sanitizer: sanitize.Sanitizer{Separator: '/'},
		Stdout:    h.out,
		Color:     "never",
		Logger:    logging.Discard(),
	}
	return h
}

func (h *harness) seed(t *testing.T, rec baseline.Record) {
	t.Helper()
	require.NoError(t, h.store.Save(rec))
}

func (h *harness) load(t *testing.T) baseline.Record {
	t.Helper()
	rec, err := h.store.Load()
	require.NoError(t, err)
	return rec
}

func (h *harness) raw(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(h.store.Path())
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return data
}

func TestRun_InitializesBaseline(t *testing.T) {
	h := newHarness(t, 1, "b.py:3: error: y\na.py:1: error: x\nb.py:4: error: z\nFound 3 errors in 2 files\n")

	code, err := h.gate.Run(context.Background(), []string{"-p", "pkg"})
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, []string{"-p", "pkg"}, h.runner.gotArgs)
	rec := h.load(t)
	assert.Equal(t, 3, *rec.TotalErrors)
	assert.Equal(t, 2, *rec.FilesInError)
	assert.Equal(t, "1.8.0", *rec.ToolVersion)
	assert.Equal(t, []string{"-p", "pkg"}, rec.ToolArgs)
	assert.Equal(t, []string{"a.py:1: error: x", "b.py:3: error: y", "b.py:4: error: z"}, rec.LastFullOutput)
	assert.Contains(t, h.out.String(), "mypykaizen: Initializing total_errors to 3\n")
	assert.Contains(t, h.out.String(), "mypykaizen: DONE, but try and clean some of these problems up :)\n")
}

func TestRun_Regression(t *testing.T) {
	h := newHarness(t, 1, "a.py:1: error: x\na.py:2: error: new\nb.py:3: error: y\nc.py:1: error: w\nc.py:2: error: v\nFound 5 errors in 2 files\n")
	seeded := baseline.Fresh()
	seeded.ToolVersion = baseline.String("1.8.0")
	seeded.TotalErrors = baseline.Int(3)
	seeded.FilesInError = baseline.Int(2)
	seeded.LastFullOutput = []string{"a.py:1: error: x", "b.py:3: error: y", "c.py:1: error: w"}
	h.seed(t, seeded)
	before := h.raw(t)

	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitRegression, code)
	assert.Equal(t, before, h.raw(t), "regressing run must not touch the baseline")
	out := h.out.String()
	assert.Contains(t, out, "mypykaizen: ERROR - Number of total_errors has increased from\n            3 to 5\n")
	assert.Contains(t, out, "mypykaizen: Differences\n    a.py:2: error: new\n    c.py:2: error: v\n")
	assert.NotContains(t, out, "DONE")
}

func TestRun_Improvement(t *testing.T) {
	h := newHarness(t, 1, "a.py:1: error: x\nFound 1 errors in 1 files\n")
	seeded := baseline.Fresh()
	seeded.ToolVersion = baseline.String("1.8.0")
	seeded.TotalErrors = baseline.Int(3)
	seeded.FilesInError = baseline.Int(2)
	h.seed(t, seeded)

	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, code)
	rec := h.load(t)
	assert.Equal(t, 1, *rec.TotalErrors)
	assert.Equal(t, 1, *rec.FilesInError)
	assert.Contains(t, h.out.String(), "GOOD JOB")
}

func TestRun_SuccessResets(t *testing.T) {
	h := newHarness(t, 0, "Success: no issues found\n")
	seeded := baseline.Fresh()
	seeded.TotalErrors = baseline.Int(8)
	seeded.FilesInError = baseline.Int(3)
	seeded.LastFullOutput = []string{"a.py:1: error: x"}
	h.seed(t, seeded)

	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, code)
	rec := h.load(t)
	assert.Equal(t, 0, *rec.TotalErrors)
	assert.Equal(t, 0, *rec.FilesInError)
	assert.NotNil(t, rec.LastFullOutput)
	assert.Empty(t, rec.LastFullOutput)
	assert.Contains(t, h.out.String(), "mypykaizen: No errors!\n")
	assert.NotContains(t, h.out.String(), "DONE")
}

func TestRun_SanitizesDaemonOutput(t *testing.T) {
	h := newHarness(t, 1, "Daemon started\nlib/x.py:1: error: bad\ntypeshed/os.pyi:10: note: defined here\nFound 1 error in 1 file\n")

	_, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"lib/x.py:1: error: bad"}, h.load(t).LastFullOutput)
}

func TestRun_UnrecognizedSummary(t *testing.T) {
	h := newHarness(t, 1, "a.py:1: error: x\nI'm a teapot hehe!\n")

	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitUnrecognizedSummary, code)
	assert.Nil(t, h.raw(t))
	assert.Equal(t, "mypykaizen: Neither success nor failure for last line:\nI'm a teapot hehe!\n", h.out.String())
}

func TestRun_NotActive(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		stdout string
	}{
		{"bad arguments", 2, "usage: mypy ...\n"},
		{"crash", 139, "Found 1 error in 1 file\n"},
		{"no output", 0, ""},
		{"no output with errors", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.code, tt.stdout)

			code, err := h.gate.Run(context.Background(), nil)
			require.NoError(t, err)

			assert.Equal(t, tt.code, code)
			assert.Nil(t, h.raw(t))
			assert.Equal(t, "mypykaizen: Not active\n", h.out.String())
		})
	}
}

func TestRun_RunnerError(t *testing.T) {
	h := newHarness(t, 0, "")
	h.runner.runErr = errors.New("exec: \"mypy\": executable file not found in $PATH")

	_, err := h.gate.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRun_VersionLookupFailureKeepsStoredVersion(t *testing.T) {
	h := newHarness(t, 1, "a.py:1: error: x\nFound 1 error in 1 file\n")
	h.runner.versionErr = errors.New("boom")
	seeded := baseline.Fresh()
	seeded.ToolVersion = baseline.String("0.770")
	seeded.TotalErrors = baseline.Int(1)
	seeded.FilesInError = baseline.Int(1)
	h.seed(t, seeded)

	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "0.770", *h.load(t).ToolVersion)
	assert.NotContains(t, h.out.String(), "version change")
}

func TestRun_SaveFailureIsFatal(t *testing.T) {
	h := newHarness(t, 1, "a.py:1: error: x\nFound 1 error in 1 file\n")
	h.gate.Store = baseline.NewStore(filepath.Join(t.TempDir(), "missing", baseline.DefaultFileName), logging.Discard())

	_, err := h.gate.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving baseline")
}

func TestRun_CorruptBaselineFailsOpen(t *testing.T) {
	h := newHarness(t, 1, "a.py:1: error: x\nFound 1 error in 1 file\n")
	require.NoError(t, os.WriteFile(h.store.Path(), []byte("<<<<<<< HEAD"), 0o644))

	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, 1, *h.load(t).TotalErrors)
}

func TestRun_RepeatedRunIsStable(t *testing.T) {
	stdout := "b.py:1: error: y\na.py:1: error: x\nFound 2 errors in 2 files\n"
	h := newHarness(t, 1, stdout)
	_, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)
	first := h.raw(t)

	h.out.Reset()
	code, err := h.gate.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, first, h.raw(t))
	assert.Contains(t, h.out.String(), "mypykaizen: total_errors unchanged at 2\n")
}
