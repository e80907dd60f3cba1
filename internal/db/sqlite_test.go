package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDBCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")

	sdb, err := NewSQLiteDB(context.Background(), path)
	require.NoError(t, err)
	defer sdb.Close()

	_, err = sdb.DB.Exec(`INSERT INTO courses (id, prerequisites, position) VALUES ('MATH 222', 'MATH 221', 0)`)
	require.NoError(t, err)

	var prereqs string
	require.NoError(t, sdb.DB.QueryRow(`SELECT prerequisites FROM courses WHERE id = 'MATH 222'`).Scan(&prereqs))
	assert.Equal(t, "MATH 221", prereqs)

	again, err := NewSQLiteDB(context.Background(), path)
	require.NoError(t, err, "schema creation is idempotent")
	assert.NoError(t, again.Close())
}
