package config

// MockProvider is a Provider backed by a fixed Settings value, for tests.
type MockProvider struct {
	Config *Settings
}

// GetConfig returns the fixed configuration.
func (m *MockProvider) GetConfig() *Settings {
	return m.Config
}

// SetConfig replaces the fixed configuration.
func (m *MockProvider) SetConfig(c *Settings) {
	m.Config = c
}

// InitConfig returns the fixed configuration without reading any files.
func (m *MockProvider) InitConfig() *Settings {
	return m.Config
}

// SetConfigFilePath is a no-op.
func (m *MockProvider) SetConfigFilePath(_ string) {}
