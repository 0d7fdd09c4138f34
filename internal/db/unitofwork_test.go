package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (*sqlx.DB, *db.SQLUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE IF NOT EXISTS uow_test (id TEXT PRIMARY KEY, val TEXT)`)
	require.NoError(t, err)

	return database, db.NewUnitOfWork(database)
}

func readVal(t *testing.T, database *sqlx.DB, id string) (string, bool) {
	t.Helper()
	var val string
	if err := database.Get(&val, `SELECT val FROM uow_test WHERE id = ?`, id); err != nil {
		return "", false
	}
	return val, true
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(`INSERT INTO uow_test (id, val) VALUES (?, ?)`), "k1", "v1")
		return err
	})
	require.NoError(t, err)

	val, found := readVal(t, database, "k1")
	assert.True(t, found)
	assert.Equal(t, "v1", val)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO uow_test (id, val) VALUES (?, ?)`, "k2", "v2"); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.EqualError(t, err, "boom")

	_, found := readVal(t, database, "k2")
	assert.False(t, found)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, `INSERT INTO uow_test (id, val) VALUES (?, ?)`, "k3", "v3")
			panic("kaboom")
		})
	})

	_, found := readVal(t, database, "k3")
	assert.False(t, found)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, _ := openTestDB(t)

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))

	var tables []string
	err := database.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)
	for _, want := range []string{"activity_logs", "app_usage", "daily_summary", "phone_usage_logs", "weekly_summary"} {
		assert.Contains(t, tables, want)
	}
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := db.OpenDB("mysql", "x")
	assert.ErrorContains(t, err, "unsupported driver")
}
