package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tools4digits/sysunit/internal/config"
	"github.com/tools4digits/sysunit/internal/log"
	"github.com/tools4digits/sysunit/internal/unitfile"
)

func TestUnitFilePath(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		expected string
	}{
		{
			name:     "service unit",
			fullName: "backup.service",
			expected: "/test/units/backup.service",
		},
		{
			name:     "timer unit",
			fullName: "backup.timer",
			expected: "/test/units/backup.timer",
		},
		{
			name:     "template unit",
			fullName: "worker@.service",
			expected: "/test/units/worker@.service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Settings{UnitDir: "/test/units"}
			provider := &config.MockProvider{Config: cfg}
			service := NewServiceWithLogger(provider, log.Nop())
			assert.Equal(t, tt.expected, service.UnitFilePath(tt.fullName))
		})
	}
}

func TestHasUnitChanged(t *testing.T) {
	logger := log.Nop()
	tempDir := t.TempDir()

	tests := []struct {
		name            string
		existingContent string
		newContent      string
		fileExists      bool
		expected        bool
	}{
		{
			name:            "file doesn't exist",
			existingContent: "",
			newContent:      "[Unit]\n",
			fileExists:      false,
			expected:        true,
		},
		{
			name:            "content unchanged",
			existingContent: "[Unit]\nDescription=same\n",
			newContent:      "[Unit]\nDescription=same\n",
			fileExists:      true,
			expected:        false,
		},
		{
			name:            "content changed",
			existingContent: "[Unit]\nDescription=old\n",
			newContent:      "[Unit]\nDescription=new\n",
			fileExists:      true,
			expected:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unitPath := filepath.Join(tempDir, "test.service")

			if tt.fileExists {
				err := os.WriteFile(unitPath, []byte(tt.existingContent), 0600)
				require.NoError(t, err)
			}

			cfg := &config.Settings{UnitDir: tempDir}
			provider := &config.MockProvider{Config: cfg}
			service := NewServiceWithLogger(provider, logger)
			result := service.HasUnitChanged(unitPath, tt.newContent)
			assert.Equal(t, tt.expected, result)

			// Clean up for next test
			if tt.fileExists {
				os.Remove(unitPath) //nolint:errcheck,gosec // Test cleanup
			}
		})
	}
}

func TestWriteUnitFile(t *testing.T) {
	logger := log.Nop()
	tempDir := t.TempDir()

	tests := []struct {
		name     string
		unitPath string
		content  string
	}{
		{
			name:     "successful write",
			unitPath: filepath.Join(tempDir, "test.service"),
			content:  "[Unit]\nDescription=test\n",
		},
		{
			name:     "write with subdirectory creation",
			unitPath: filepath.Join(tempDir, "subdir", "test.service"),
			content:  "[Unit]\nDescription=test\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Settings{UnitDir: tempDir}
			provider := &config.MockProvider{Config: cfg}
			service := NewServiceWithLogger(provider, logger)
			err := service.WriteUnitFile(tt.unitPath, tt.content)
			require.NoError(t, err)

			writtenContent, err := os.ReadFile(tt.unitPath)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(writtenContent))
		})
	}
}

func TestRemoveUnitFile(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Settings{UnitDir: tempDir}
	provider := &config.MockProvider{Config: cfg}
	service := NewServiceWithLogger(provider, log.Nop())

	unitPath := filepath.Join(tempDir, "gone.service")
	require.NoError(t, service.WriteUnitFile(unitPath, "[Unit]\n"))

	require.NoError(t, service.RemoveUnitFile(unitPath, true))

	// Second removal without requireExists is a no-op
	assert.NoError(t, service.RemoveUnitFile(unitPath, false))

	err := service.RemoveUnitFile(unitPath, true)
	require.Error(t, err)
	assert.True(t, unitfile.IsNotFound(err))
}

func TestReadUnitFile(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.Settings{UnitDir: tempDir}
	provider := &config.MockProvider{Config: cfg}
	service := NewServiceWithLogger(provider, log.Nop())

	unitPath := filepath.Join(tempDir, "read.service")
	require.NoError(t, service.WriteUnitFile(unitPath, "[Unit]\nDescription=here\n"))

	content, err := service.ReadUnitFile(unitPath)
	require.NoError(t, err)
	assert.Equal(t, "[Unit]\nDescription=here\n", content)

	_, err = service.ReadUnitFile(filepath.Join(tempDir, "absent.service"))
	require.Error(t, err)
	assert.True(t, unitfile.IsNotFound(err))
}

func TestGetContentHash(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "empty content",
			content:  "",
			expected: "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		},
		{
			name:     "simple content",
			content:  "hello world",
			expected: "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetContentHash(tt.content)
			assert.Equal(t, tt.expected, fmt.Sprintf("%x", result))
		})
	}
}

func TestServiceWithConfigProvider(t *testing.T) {
	testConfig := &config.Settings{
		UnitDir: "/test/custom/unit/dir",
	}
	configProvider := config.NewDefaultConfigProvider()
	configProvider.SetConfig(testConfig)

	fsService := NewService(configProvider)

	unitPath := fsService.UnitFilePath("api.service")
	assert.Equal(t, "/test/custom/unit/dir/api.service", unitPath, "Service should use injected config for unit path")

	dir := fsService.UnitFilesDirectory()
	assert.Equal(t, "/test/custom/unit/dir", dir, "Service should use injected config for the unit directory")
}
