// Package postgresqltest provides an in-memory database with the production
// schema for repository and end-to-end tests.
package postgresqltest

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"orgdirectory/backend/internal/commands"
	"orgdirectory/backend/internal/pkg/repository/postgresql"
)

// New returns a migrated in-memory database that is closed with the test.
func New(t testing.TB) *postgresql.Database {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqldb.SetMaxOpenConns(1)

	db := postgresql.New(bun.NewDB(sqldb, sqlitedialect.New()))
	t.Cleanup(func() { _ = db.Close() })

	if err := commands.MigrateUP(context.Background(), db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	return db
}
