package registry

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "type", "sha1_hash", "user_mode", "created_at"}).
		AddRow(1, "backup", "service", []byte{0xde, 0xad}, false, created).
		AddRow(2, "backup", "timer", []byte{0xbe, 0xef}, false, created)

	mock.ExpectQuery("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units ORDER BY name, type").
		WillReturnRows(rows)

	repo := NewRepository(db)
	units, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "backup", units[0].Name)
	assert.Equal(t, "service", units[0].Type)
	assert.Equal(t, "backup.service", units[0].FullName())
	assert.Equal(t, "backup.timer", units[1].FullName())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUnitType(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "name", "type", "sha1_hash", "user_mode", "created_at"}).
		AddRow(2, "backup", "timer", []byte{0x01}, true, time.Now())

	mock.ExpectQuery("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units WHERE type = \\? ORDER BY name").
		WithArgs("timer").
		WillReturnRows(rows)

	repo := NewRepository(db)
	units, err := repo.FindByUnitType("timer")
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "timer", units[0].Type)
	assert.True(t, units[0].UserMode)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "name", "type", "sha1_hash", "user_mode", "created_at"}).
		AddRow(7, "worker@", "service", []byte{0x02}, false, time.Now())

	mock.ExpectQuery("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units WHERE name = \\? AND type = \\?").
		WithArgs("worker@", "service").
		WillReturnRows(rows)

	repo := NewRepository(db)
	unit, err := repo.FindByName("worker@", "service")
	require.NoError(t, err)
	assert.Equal(t, int64(7), unit.ID)
	assert.Equal(t, "worker@.service", unit.FullName())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByNameMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id, name, type, sha1_hash, user_mode, created_at FROM units WHERE name = \\? AND type = \\?").
		WithArgs("ghost", "service").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "sha1_hash", "user_mode", "created_at"}))

	repo := NewRepository(db)
	_, err = repo.FindByName("ghost", "service")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not recorded")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO units").
		WithArgs("backup", "service", []byte{0xaa}, false).
		WillReturnResult(sqlmock.NewResult(3, 1))

	repo := NewRepository(db)
	id, err := repo.Upsert(&Unit{Name: "backup", Type: "service", SHA1Hash: []byte{0xaa}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM units WHERE name = \\? AND type = \\?").
		WithArgs("backup", "service").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	require.NoError(t, repo.Delete("backup", "service"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
