// Package validate checks that the host can run sysunit at all: a Linux
// system with a working systemctl on the path.
package validate

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/tools4digits/sysunit/internal/execx"
	"github.com/tools4digits/sysunit/internal/log"
)

// Validator provides system requirements validation with dependency injection.
type Validator struct {
	logger   log.Logger
	runner   execx.Runner
	osGetter func() string // For testing, defaults to runtime.GOOS
}

// NewValidator creates a new Validator with the provided logger and command runner.
func NewValidator(logger log.Logger, runner execx.Runner) *Validator {
	return &Validator{
		logger:   logger,
		runner:   runner,
		osGetter: func() string { return runtime.GOOS },
	}
}

// WithOSGetter sets a custom OS getter for testing.
func (v *Validator) WithOSGetter(osGetter func() string) *Validator {
	v.osGetter = osGetter
	return v
}

// SystemRequirements checks that the platform is Linux and that systemctl
// is available and actually backed by systemd.
func (v *Validator) SystemRequirements(ctx context.Context) error {
	goos := v.osGetter()
	if goos != "linux" {
		return fmt.Errorf("unsupported platform: %s (sysunit requires Linux with systemd)", goos)
	}

	v.logger.Debug("Validating systemd availability")

	version, err := v.runner.CombinedOutput(ctx, "systemctl", "--version")
	if err != nil {
		return fmt.Errorf("systemctl not found: %w", err)
	}
	if !strings.Contains(string(version), "systemd") {
		return fmt.Errorf("systemctl is not backed by systemd")
	}
	return nil
}
