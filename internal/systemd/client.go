// Package systemd drives the service manager through systemctl. The client
// shells out instead of talking D-Bus, so it works anywhere the command line
// tool does, and every call captures stdout, stderr, and the exit status.
package systemd

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tools4digits/sysunit/internal/execx"
	"github.com/tools4digits/sysunit/internal/log"
)

// validUnitNamePattern defines allowed characters in full systemd unit
// names, including template and instance forms like "worker@.service" and
// "worker@one.service".
var validUnitNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9:@_.\\-]*\.[a-z]+$`)

// Client runs systemctl commands against either the system or the per-user
// service manager.
type Client struct {
	runner   execx.Runner
	logger   log.Logger
	userMode bool
}

// NewClient creates a systemctl client. When userMode is set every
// invocation targets the per-user manager with --user; otherwise --system.
func NewClient(runner execx.Runner, logger log.Logger, userMode bool) *Client {
	return &Client{
		runner:   runner,
		logger:   logger,
		userMode: userMode,
	}
}

// UserMode reports whether the client targets the per-user manager.
func (c *Client) UserMode() bool {
	return c.userMode
}

func (c *Client) scopeFlag() string {
	if c.userMode {
		return "--user"
	}
	return "--system"
}

// ValidateUnitName checks that a full unit name contains only characters
// systemd accepts, before it is handed to the shell.
func ValidateUnitName(name string) error {
	if !validUnitNamePattern.MatchString(name) {
		return fmt.Errorf("invalid unit name %q", name)
	}
	return nil
}

// systemctl runs one systemctl invocation and maps a non-zero exit to a
// *CommandError. The error return is reserved for commands that could not
// be run at all.
func (c *Client) systemctl(ctx context.Context, verb, unit string, extra ...string) (execx.Result, error) {
	args := []string{c.scopeFlag(), verb}
	args = append(args, extra...)
	if unit != "" {
		args = append(args, unit)
	}

	c.logger.Debug("Running systemctl", "args", strings.Join(args, " "))

	res, err := c.runner.Run(ctx, "systemctl", args...)
	if err != nil {
		return res, fmt.Errorf("failed to run systemctl %s: %w", verb, err)
	}
	if res.ExitCode != 0 {
		return res, &CommandError{Verb: verb, Unit: unit, Result: res}
	}
	return res, nil
}

func (c *Client) unitVerb(ctx context.Context, verb, unit string, extra ...string) error {
	if err := ValidateUnitName(unit); err != nil {
		return err
	}
	_, err := c.systemctl(ctx, verb, unit, extra...)
	return err
}

// Start starts a unit.
func (c *Client) Start(ctx context.Context, unit string) error {
	return c.unitVerb(ctx, "start", unit)
}

// Stop stops a unit.
func (c *Client) Stop(ctx context.Context, unit string) error {
	return c.unitVerb(ctx, "stop", unit)
}

// Restart restarts a unit.
func (c *Client) Restart(ctx context.Context, unit string) error {
	return c.unitVerb(ctx, "restart", unit)
}

// Enable enables a unit so the manager starts it on boot or login.
func (c *Client) Enable(ctx context.Context, unit string) error {
	return c.unitVerb(ctx, "enable", unit)
}

// Disable disables a unit.
func (c *Client) Disable(ctx context.Context, unit string) error {
	return c.unitVerb(ctx, "disable", unit)
}

// DaemonReload asks the manager to re-read unit files from disk. It must
// run after unit files are written or removed.
func (c *Client) DaemonReload(ctx context.Context) error {
	_, err := c.systemctl(ctx, "daemon-reload", "")
	return err
}

// Status returns the human-readable status output for a unit. systemctl
// exits non-zero for inactive or failed units; the captured output is
// returned alongside the *CommandError in that case so callers can still
// display it.
func (c *Client) Status(ctx context.Context, unit string) (string, error) {
	if err := ValidateUnitName(unit); err != nil {
		return "", err
	}
	res, err := c.systemctl(ctx, "status", unit, "--no-pager")
	return strings.TrimSpace(res.Stdout), err
}

// IsActive returns the activation state of a unit, such as "active",
// "inactive" or "failed". A non-zero exit is how systemctl reports an
// inactive unit, so it is not an error here.
func (c *Client) IsActive(ctx context.Context, unit string) (string, error) {
	if err := ValidateUnitName(unit); err != nil {
		return "", err
	}
	res, err := c.runner.Run(ctx, "systemctl", c.scopeFlag(), "is-active", unit)
	if err != nil {
		return "", fmt.Errorf("failed to run systemctl is-active: %w", err)
	}
	state := strings.TrimSpace(res.Stdout)
	if state == "" {
		state = "unknown"
	}
	return state, nil
}

// Cat returns the on-disk unit file content as the manager sees it.
func (c *Client) Cat(ctx context.Context, unit string) (string, error) {
	if err := ValidateUnitName(unit); err != nil {
		return "", err
	}
	res, err := c.systemctl(ctx, "cat", unit, "--no-pager")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// FragmentPath returns the path of the unit file backing a unit, or an
// empty string when the manager does not know the unit.
func (c *Client) FragmentPath(ctx context.Context, unit string) (string, error) {
	if err := ValidateUnitName(unit); err != nil {
		return "", err
	}
	res, err := c.systemctl(ctx, "show", unit, "--property=FragmentPath", "--value")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
