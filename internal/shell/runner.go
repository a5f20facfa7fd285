// Package shell runs external programs on behalf of the repository driver and
// the project adapters.
//
// All process execution goes through the Runner interface so that drivers can
// be exercised in tests with MockRunner instead of real git or mvn binaries.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ErrCommandFailed is matched by every CommandError.
var ErrCommandFailed = errors.New("command failed")

// Runner executes a program in dir and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// CommandError describes a failed external command.
type CommandError struct {
	Command  string
	Args     []string
	Output   string // trimmed stderr, or stdout when stderr was empty
	ExitCode int    // -1 when the process could not be started
	Err      error
}

func (e *CommandError) Error() string {
	if e.Output != "" {
		return e.Output
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrCommandFailed.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// CommandLine renders the command and its arguments for display.
func (e *CommandError) CommandLine() string {
	return strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := strings.TrimSpace(stdout.String())
	if err == nil {
		return out, nil
	}

	cmdErr := &CommandError{
		Command:  name,
		Args:     args,
		Output:   strings.TrimSpace(stderr.String()),
		ExitCode: -1,
		Err:      err,
	}
	if cmdErr.Output == "" {
		cmdErr.Output = out
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return out, cmdErr
}

// ExitCode returns the exit status carried by err, or -1 if err is not a CommandError.
func ExitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}
