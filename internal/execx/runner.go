// Package execx provides a testable abstraction for command execution.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result captures the outcome of a finished command.
type Result struct {
	Stdout   string // Captured standard output
	Stderr   string // Captured standard error
	ExitCode int    // Process exit status
}

// Runner defines an interface for executing external commands.
type Runner interface {
	// CombinedOutput executes a command and returns its combined stdout
	// and stderr output, failing on any non-zero exit.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run executes a command and returns its captured output and exit
	// status. A non-zero exit is reported through Result.ExitCode, not
	// through the error return, which is reserved for commands that could
	// not be started or were cancelled.
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// RealRunner implements Runner using os/exec.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// CombinedOutput executes a command and returns its combined stdout and stderr output.
func (r *RealRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Run executes a command with separated output streams.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}
