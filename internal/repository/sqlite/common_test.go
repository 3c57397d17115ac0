package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "life-planner/internal/errors"
)

func openRawDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "common.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, position INTEGER, name TEXT)`)
	require.NoError(t, err)
	return db
}

func TestHandleDatabaseError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	result := HandleDatabaseError("test operation", originalErr)

	assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeStorage))
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
	assert.ErrorIs(t, result, originalErr)
}

func TestHandleDatabaseError_PassesAppErrors(t *testing.T) {
	malformed := apperrors.NewMalformedDataError("task", "bad due", nil)

	result := HandleDatabaseError("scan tasks", malformed)

	assert.Same(t, malformed, result)
}

func TestExecuteWithLastInsertID(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()

	first, err := ExecuteWithLastInsertID(ctx, db, "INSERT INTO items (position, name) VALUES (?, ?)", 0, "a")
	require.NoError(t, err)
	second, err := ExecuteWithLastInsertID(ctx, db, "INSERT INTO items (position, name) VALUES (?, ?)", 1, "b")
	require.NoError(t, err)

	assert.Greater(t, second, first)

	_, err = ExecuteWithLastInsertID(ctx, db, "INSERT INTO missing (name) VALUES (?)", "x")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
}

func TestQueryMultiple(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()
	require.NoError(t, Execute(ctx, db, "INSERT INTO items (position, name) VALUES (1, 'b'), (0, 'a')"))

	trackers, err := QueryMultiple(ctx, db, "SELECT id, position, name FROM items ORDER BY position", ScanTrackers, "items")

	require.NoError(t, err)
	require.Len(t, trackers, 2)
	assert.Equal(t, "a", trackers[0].Name)
	assert.Equal(t, "b", trackers[1].Name)

	_, err = QueryMultiple(ctx, db, "SELECT nope FROM items", ScanTrackers, "items")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeStorage))
}

func TestExecute_InTransaction(t *testing.T) {
	db := openRawDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, Execute(ctx, tx, "INSERT INTO items (position, name) VALUES (0, 'a')"))
	require.NoError(t, tx.Rollback())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&count))
	assert.Equal(t, 0, count)
}
