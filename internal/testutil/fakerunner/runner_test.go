package fakerunner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tools4digits/sysunit/internal/execx"
)

func TestFakeRunner(t *testing.T) {
	t.Run("new runner starts empty", func(t *testing.T) {
		runner := New()
		assert.Empty(t, runner.GetCalls())
	})

	t.Run("set and get output", func(t *testing.T) {
		runner := New()
		expectedOutput := []byte("test output")

		runner.SetOutput("echo", []string{"hello"}, expectedOutput)
		output, err := runner.CombinedOutput(context.Background(), "echo", "hello")

		assert.NoError(t, err)
		assert.Equal(t, expectedOutput, output)
	})

	t.Run("set and get error", func(t *testing.T) {
		runner := New()
		expectedErr := errors.New("test error")

		runner.SetError("failing-command", []string{}, expectedErr)
		output, err := runner.CombinedOutput(context.Background(), "failing-command")

		assert.Nil(t, output)
		assert.Equal(t, expectedErr, err)
	})

	t.Run("captures calls", func(t *testing.T) {
		runner := New()

		_, _ = runner.CombinedOutput(context.Background(), "echo", "hello")
		_, _ = runner.CombinedOutput(context.Background(), "ls", "-la")

		calls := runner.GetCalls()
		assert.Len(t, calls, 2)
		assert.Equal(t, "echo", calls[0].Name)
		assert.Equal(t, []string{"hello"}, calls[0].Args)
		assert.Equal(t, "ls", calls[1].Name)
		assert.Equal(t, []string{"-la"}, calls[1].Args)
	})

	t.Run("default behavior returns empty output", func(t *testing.T) {
		runner := New()

		output, err := runner.CombinedOutput(context.Background(), "unknown-command")

		assert.NoError(t, err)
		assert.Empty(t, output)
	})

	t.Run("set and get result", func(t *testing.T) {
		runner := New()
		expected := execx.Result{Stdout: "active\n", Stderr: "", ExitCode: 0}

		runner.SetResult("systemctl", []string{"is-active", "a.service"}, expected)
		result, err := runner.Run(context.Background(), "systemctl", "is-active", "a.service")

		assert.NoError(t, err)
		assert.Equal(t, expected, result)
	})

	t.Run("run error", func(t *testing.T) {
		runner := New()
		expectedErr := errors.New("spawn failed")

		runner.SetError("systemctl", []string{"start", "x.service"}, expectedErr)
		_, err := runner.Run(context.Background(), "systemctl", "start", "x.service")

		assert.Equal(t, expectedErr, err)
	})

	t.Run("run default behavior is a clean exit", func(t *testing.T) {
		runner := New()

		result, err := runner.Run(context.Background(), "systemctl", "daemon-reload")

		assert.NoError(t, err)
		assert.Equal(t, execx.Result{}, result)
	})

	t.Run("run captures calls too", func(t *testing.T) {
		runner := New()

		_, _ = runner.Run(context.Background(), "systemctl", "--user", "stop", "a.service")

		calls := runner.GetCalls()
		assert.Len(t, calls, 1)
		assert.Equal(t, "systemctl", calls[0].Name)
		assert.Equal(t, []string{"--user", "stop", "a.service"}, calls[0].Args)
	})

	t.Run("reset clears state", func(t *testing.T) {
		runner := New()

		runner.SetOutput("echo", []string{"test"}, []byte("output"))
		runner.SetResult("echo", []string{"test"}, execx.Result{Stdout: "output"})
		runner.SetError("fail", []string{}, errors.New("error"))
		_, _ = runner.CombinedOutput(context.Background(), "echo", "test")

		runner.Reset()

		assert.Empty(t, runner.GetCalls())

		// After reset, should return default behavior
		output, err := runner.CombinedOutput(context.Background(), "echo", "test")
		assert.NoError(t, err)
		assert.Empty(t, output)

		result, err := runner.Run(context.Background(), "echo", "test")
		assert.NoError(t, err)
		assert.Equal(t, execx.Result{}, result)
	})
}
