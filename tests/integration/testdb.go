// Package integration exercises the full stack against a real database.
// SQLite in memory keeps the suite self-contained; the repositories run
// the same gorm code paths they run against Postgres.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jx4/backend/internal/infrastructure/config"
	"github.com/jx4/backend/internal/infrastructure/persistence"
)

// NewTestDB opens a fresh in-memory database with the full schema applied
func NewTestDB(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: ":memory:",
		// a :memory: database exists per connection, so the pool must be
		// limited to one connection for the schema to be visible everywhere
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() { _ = db.Close() })
	return db
}
