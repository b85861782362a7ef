package registry

import (
	"database/sql"
	"fmt"
	"time"
)

// Unit represents a record in the units table: one unit file sysunit has
// written, identified by base name and type.
type Unit struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Type      string    `db:"type"`
	SHA1Hash  []byte    `db:"sha1_hash"`
	UserMode  bool      `db:"user_mode"`
	CreatedAt time.Time `db:"created_at"` // Set by the database on first insert
}

// FullName returns the on-disk file name for the record.
func (u Unit) FullName() string {
	return u.Name + "." + u.Type
}

// Repository defines the interface for unit record access.
type Repository interface {
	FindAll() ([]Unit, error)
	FindByUnitType(unitType string) ([]Unit, error)
	FindByName(name, unitType string) (Unit, error)
	Upsert(unit *Unit) (int64, error)
	Delete(name, unitType string) error
}

// SQLRepository implements Repository on a SQL database.
type SQLRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQL-based unit repository.
func NewRepository(db *sql.DB) Repository {
	return &SQLRepository{db: db}
}

const unitColumns = "id, name, type, sha1_hash, user_mode, created_at"

// FindAll retrieves all recorded units ordered by name and type.
func (r *SQLRepository) FindAll() ([]Unit, error) {
	rows, err := r.db.Query("SELECT " + unitColumns + " FROM units ORDER BY name, type")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanUnits(rows)
}

// FindByUnitType retrieves recorded units filtered by type.
func (r *SQLRepository) FindByUnitType(unitType string) ([]Unit, error) {
	rows, err := r.db.Query("SELECT "+unitColumns+" FROM units WHERE type = ? ORDER BY name", unitType)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanUnits(rows)
}

// FindByName retrieves a single unit record by base name and type.
func (r *SQLRepository) FindByName(name, unitType string) (Unit, error) {
	row := r.db.QueryRow("SELECT "+unitColumns+" FROM units WHERE name = ? AND type = ?", name, unitType)

	var unit Unit
	if err := row.Scan(&unit.ID, &unit.Name, &unit.Type, &unit.SHA1Hash, &unit.UserMode, &unit.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Unit{}, fmt.Errorf("unit %s.%s not recorded", name, unitType)
		}
		return Unit{}, err
	}
	return unit, nil
}

// Upsert inserts a unit record, or refreshes the hash and scope of an
// existing record with the same name and type.
func (r *SQLRepository) Upsert(unit *Unit) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO units (name, type, sha1_hash, user_mode)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name, type) DO UPDATE SET
		sha1_hash = excluded.sha1_hash,
		user_mode = excluded.user_mode
	`, unit.Name, unit.Type, unit.SHA1Hash, unit.UserMode)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Delete removes a unit record.
func (r *SQLRepository) Delete(name, unitType string) error {
	_, err := r.db.Exec("DELETE FROM units WHERE name = ? AND type = ?", name, unitType)
	return err
}

func scanUnits(rows *sql.Rows) ([]Unit, error) {
	var units []Unit
	for rows.Next() {
		var unit Unit
		if err := rows.Scan(&unit.ID, &unit.Name, &unit.Type, &unit.SHA1Hash, &unit.UserMode, &unit.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}
