package migrations

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestRunCreatesSchemaAndIsRepeatable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "royalties.db")

	require.NoError(t, Run(dsn))
	require.NoError(t, Run(dsn), "second run must be a no-op")

	db, err := sqlx.Connect("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('authors', 'books', 'sales', 'withdrawals') ORDER BY name`))
	assert.Equal(t, []string{"authors", "books", "sales", "withdrawals"}, tables)
}

func TestWithdrawalStatusIsConstrained(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "royalties.db")
	require.NoError(t, Run(dsn))

	db, err := sqlx.Connect("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO withdrawals (author_id, amount, status, request_date) VALUES (1, '10', 'Cancelled', '2026-01-01')`)
	assert.Error(t, err)
}
