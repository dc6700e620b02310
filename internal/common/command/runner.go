// Package command runs the external package-manager binaries.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

var (
	// ErrCommandFailed is returned when a binary cannot be started or exits non-zero
	ErrCommandFailed = errors.New("command failed")
	// ErrInvalidOutput is returned when a binary prints something that is not UTF-8
	ErrInvalidOutput = errors.New("command produced invalid output")
)

// Runner runs a binary and returns its standard output.
// This interface allows for mocking subprocesses in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs binaries with os/exec
type ExecRunner struct {
	// Env, when set, replaces the environment of the child process
	Env []string
}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args and returns stdout.
// A spawn failure or non-zero exit is wrapped in ErrCommandFailed together
// with stderr for context.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Env != nil {
		cmd.Env = r.Env
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrCommandFailed, describe(name, args), err)
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			err = errors.Join(err, errors.New(stderr))
		}
		return "", err
	}

	if !utf8.Valid(stdoutBuf.Bytes()) {
		return "", fmt.Errorf("%w: %s", ErrInvalidOutput, describe(name, args))
	}
	return stdoutBuf.String(), nil
}

func describe(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// Ensure ExecRunner implements Runner interface
var _ Runner = (*ExecRunner)(nil)
