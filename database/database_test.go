package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	script := `
		-- leading comment; with a semicolon
		CREATE TABLE a (x TEXT);
		INSERT INTO a VALUES ('semi;colon');
		INSERT INTO a VALUES ('it''s')
	`
	got := splitStatements(script)
	require.Len(t, got, 3)
	assert.Equal(t, "CREATE TABLE a (x TEXT)", got[0])
	assert.Equal(t, "INSERT INTO a VALUES ('semi;colon')", got[1])
	assert.Equal(t, "INSERT INTO a VALUES ('it''s')", got[2])
}

func TestNew_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	migrations := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
		"002_seed.sql": {Data: []byte("INSERT INTO things VALUES ('one');")},
		"README.md":    {Data: []byte("not a migration")},
	}

	db, err := New(path, migrations)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not re-run 002 (it would fail on the primary key).
	db, err = New(path, migrations)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM things").Scan(&n))
	assert.Equal(t, 1, n)

	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 2, n)
}

func TestEmbeddedMigrations(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "app.db"), Migrations())
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "comments", "comment_reactions", "chat_messages"} {
		var n int
		err := db.Conn.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	db, err := New(filepath.Join(t.TempDir(), "app.db"), fstest.MapFS{
		"001.sql": {Data: []byte("CREATE TABLE t (v INTEGER);")},
	})
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO t VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO t VALUES (2)")
		return err
	})
	require.NoError(t, err)

	assert.Panics(t, func() {
		_ = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
			_, _ = tx.ExecContext(ctx, "INSERT INTO t VALUES (3)")
			panic("kaboom")
		})
	})

	var sum int
	require.NoError(t, db.Conn.QueryRow("SELECT COALESCE(SUM(v), 0) FROM t").Scan(&sum))
	assert.Equal(t, 2, sum)
}
