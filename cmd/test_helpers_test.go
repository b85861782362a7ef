package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tools4digits/sysunit/internal/config"
	"github.com/tools4digits/sysunit/internal/fs"
	"github.com/tools4digits/sysunit/internal/log"
	"github.com/tools4digits/sysunit/internal/systemd"
	"github.com/tools4digits/sysunit/internal/testutil/fakerunner"
	"github.com/tools4digits/sysunit/internal/validate"
)

// testApp bundles an App wired with fakes and the temp dirs behind it.
type testApp struct {
	*App
	Runner   *fakerunner.Runner
	Registry *fakeRegistry
	UnitDir  string
	DefsDir  string
}

// newTestApp builds an App against temp directories, a scripted runner,
// and an in-memory registry.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	base := t.TempDir()
	unitDir := filepath.Join(base, "units")
	defsDir := filepath.Join(base, "definitions")
	require.NoError(t, os.MkdirAll(unitDir, 0750))
	require.NoError(t, os.MkdirAll(defsDir, 0750))

	cfg := &config.Settings{
		UnitDir:        unitDir,
		DefinitionsDir: defsDir,
		DBPath:         filepath.Join(base, "sysunit.db"),
		SyncInterval:   config.DefaultSyncInterval,
	}
	provider := &config.MockProvider{Config: cfg}

	runner := fakerunner.New()
	reg := newFakeRegistry()
	logger := log.Nop()

	app := &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: provider,
		Runner:         runner,
		FSService:      fs.NewServiceWithLogger(provider, logger),
		Registry:       reg,
		Systemd:        systemd.NewClient(runner, logger, false),
		Validator:      validate.NewValidator(logger, runner),
	}

	return &testApp{
		App:      app,
		Runner:   runner,
		Registry: reg,
		UnitDir:  unitDir,
		DefsDir:  defsDir,
	}
}

// writeDefinitions puts definition file content into the test definitions
// directory and returns its path.
func (a *testApp) writeDefinitions(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(a.DefsDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// systemctlCalls returns the argv of every systemctl invocation recorded
// by the fake runner.
func (a *testApp) systemctlCalls() [][]string {
	var calls [][]string
	for _, call := range a.Runner.GetCalls() {
		if call.Name == "systemctl" {
			calls = append(calls, call.Args)
		}
	}
	return calls
}
