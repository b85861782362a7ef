// Package registry tracks the units sysunit has written, in a small sqlite
// database. The record is what makes list and prune possible: it remembers
// which files in the unit directory are ours, and the content hash each one
// was last written with.
package registry

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/tools4digits/sysunit/internal/log"

	// Register migrate's sqlite3 driver.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"

	// Register sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect opens the registry database at dbPath, creating the parent
// directory when needed.
func Connect(dbPath string, logger log.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Connected to registry database", "path", dbPath)
	return db, nil
}

// Up migrates the registry schema at dbPath to the latest version.
func Up(dbPath string, logger log.Logger) error {
	m, err := migrationInstance(dbPath, logger)
	if err != nil {
		return err
	}
	defer closeMigration(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("Registry schema up to date")
			return nil
		}
		return err
	}
	logger.Debug("Registry migrations applied")
	return nil
}

// Down rolls back all registry migrations.
func Down(dbPath string, logger log.Logger) error {
	m, err := migrationInstance(dbPath, logger)
	if err != nil {
		return err
	}
	defer closeMigration(m)

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func migrationInstance(dbPath string, logger log.Logger) (*migrate.Migrate, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, err
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, "sqlite3://"+dbPath)
	if err != nil {
		return nil, err
	}
	m.Log = &migrationLogger{logger: logger}
	return m, nil
}

func closeMigration(m *migrate.Migrate) {
	_, _ = m.Close()
}

type migrationLogger struct {
	logger log.Logger
}

func (l *migrationLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug("Migration: " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrationLogger) Verbose() bool {
	return false
}
