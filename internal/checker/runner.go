package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Result is the outcome of a single checker invocation.
type Result struct {
	ExitCode int
	Stdout   string
}

// Runner invokes the type checker.
type Runner interface {
	// Run executes the checker with args forwarded verbatim.
	Run(ctx context.Context, args []string) (Result, error)
	// Version reports the checker's version string.
	Version(ctx context.Context) (string, error)
}

// ExecRunner runs the checker as a subprocess.
type ExecRunner struct {
	Command        []string
	VersionCommand []string
	Stdin          io.Reader
	Stdout         io.Writer
	Stderr         io.Writer
}

// Run starts the checker, waits for it to exit and returns its exit code and
// captured stdout. Stdout is forwarded to r.Stdout as it is produced. A
// non-zero exit is not an error; failing to start the process is.
func (r *ExecRunner) Run(ctx context.Context, args []string) (Result, error) {
	if len(r.Command) == 0 {
		return Result{}, errors.New("no checker command configured")
	}
	cmdArgs := append(append([]string{}, r.Command[1:]...), args...)
	cmd := exec.CommandContext(ctx, r.Command[0], cmdArgs...)

	var captured bytes.Buffer
	cmd.Stdin = r.Stdin
	cmd.Stderr = r.Stderr
	if r.Stdout != nil {
		cmd.Stdout = io.MultiWriter(r.Stdout, &captured)
	} else {
		cmd.Stdout = &captured
	}

	err := cmd.Run()
	res := Result{Stdout: captured.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, fmt.Errorf("running %s: %w", r.Command[0], err)
	}
	return res, nil
}

// Version runs the version command and extracts the version token from its output.
func (r *ExecRunner) Version(ctx context.Context) (string, error) {
	command := r.VersionCommand
	if len(command) == 0 {
		if len(r.Command) == 0 {
			return "", errors.New("no checker command configured")
		}
		command = []string{r.Command[0], "--version"}
	}
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", strings.Join(command, " "), err, strings.TrimSpace(stderr.String()))
	}
	v := ParseVersion(string(out))
	if v == "" {
		return "", fmt.Errorf("%s: empty version output", strings.Join(command, " "))
	}
	return v, nil
}
