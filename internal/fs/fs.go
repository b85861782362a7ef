// Package fs provides file system operations for systemd unit management
package fs

import (
	"crypto/sha1" //nolint:gosec // Not used for security purposes, just content comparison
	"fmt"
	"os"
	"path/filepath"

	"github.com/tools4digits/sysunit/internal/config"
	"github.com/tools4digits/sysunit/internal/log"
	"github.com/tools4digits/sysunit/internal/unitfile"
)

// Service provides file system operations with configurable paths.
type Service struct {
	configProvider config.Provider
	logger         log.Logger
}

// NewService creates a new filesystem service with the given config provider.
func NewService(configProvider config.Provider) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         log.NewLogger(configProvider.GetConfig().Verbose),
	}
}

// NewServiceWithLogger creates a new filesystem service with explicit logger injection.
func NewServiceWithLogger(configProvider config.Provider, logger log.Logger) *Service {
	return &Service{
		configProvider: configProvider,
		logger:         logger,
	}
}

// UnitFilePath returns the full path for a unit file, given its full name
// such as "backup.service" or "worker@.service".
func (s *Service) UnitFilePath(fullName string) string {
	return filepath.Join(s.configProvider.GetConfig().UnitDir, fullName)
}

// UnitFilesDirectory returns the directory where unit files are installed.
func (s *Service) UnitFilesDirectory() string {
	return s.configProvider.GetConfig().UnitDir
}

// HasUnitChanged checks if the content of a unit file has changed.
func (s *Service) HasUnitChanged(unitPath, content string) bool {
	existingContent, err := os.ReadFile(unitPath) //nolint:gosec // Safe as path is internally constructed, not user-controlled
	if err != nil {
		// File doesn't exist or can't be read, so it has changed
		return true
	}

	s.logger.Debug("Content hash comparison",
		"existing", fmt.Sprintf("%x", GetContentHash(string(existingContent))),
		"new", fmt.Sprintf("%x", GetContentHash(content)))

	// Compare the actual content directly instead of hashes
	if string(existingContent) == content {
		s.logger.Debug("Unit unchanged, skipping", "path", unitPath)
		return false
	}

	return true
}

// WriteUnitFile writes rendered unit file text to the specified path,
// creating the parent directory when needed.
func (s *Service) WriteUnitFile(unitPath, content string) error {
	s.logger.Debug("Writing unit file", "path", unitPath)

	if err := os.MkdirAll(filepath.Dir(unitPath), 0750); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}

	return unitfile.WriteText(unitPath, content)
}

// RemoveUnitFile deletes the unit file at the specified path. When
// requireExists is set, a missing file is reported as an error.
func (s *Service) RemoveUnitFile(unitPath string, requireExists bool) error {
	s.logger.Debug("Removing unit file", "path", unitPath)
	return unitfile.Remove(unitPath, requireExists)
}

// ReadUnitFile returns the current content of the unit file at the
// specified path.
func (s *Service) ReadUnitFile(unitPath string) (string, error) {
	content, err := os.ReadFile(unitPath) //nolint:gosec // Safe as path is internally constructed, not user-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return "", &unitfile.NotFoundError{Path: unitPath}
		}
		return "", err
	}
	return string(content), nil
}

// GetContentHash calculates a SHA1 hash for content storage and change tracking.
func GetContentHash(content string) []byte {
	hash := sha1.New() //nolint:gosec // Not used for security purposes, just for content tracking
	hash.Write([]byte(content))
	return hash.Sum(nil)
}
