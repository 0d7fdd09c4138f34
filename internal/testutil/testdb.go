package testutil

import (
	"testing"

	"github.com/ashlinalex1/mindstride/internal/db"
	"github.com/jmoiron/sqlx"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.OpenDB(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sqlx.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database)
}
