package systemd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tools4digits/sysunit/internal/execx"
)

// CommandError reports a systemctl invocation that ran but exited non-zero.
// The captured output is kept so callers can surface the manager's own
// diagnostics.
type CommandError struct {
	Verb   string       // The systemctl verb, such as "start"
	Unit   string       // The unit operated on, empty for daemon-reload
	Result execx.Result // Captured output and exit status
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	target := e.Unit
	if target == "" {
		target = "manager"
	}
	msg := strings.TrimSpace(e.Result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Result.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("systemctl %s %s failed with exit status %d", e.Verb, target, e.Result.ExitCode)
	}
	return fmt.Sprintf("systemctl %s %s failed with exit status %d: %s", e.Verb, target, e.Result.ExitCode, msg)
}

// IsCommandError checks if an error is a CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}
