package commands_test

import (
	"context"
	"testing"

	"orgdirectory/backend/internal/commands"
	"orgdirectory/backend/internal/pkg/repository/postgresql/postgresqltest"
)

func TestMigrateUPIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := postgresqltest.New(t)

	if err := commands.MigrateUP(ctx, db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	version, dirty, err := commands.Version(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	if version != commands.Latest() || dirty {
		t.Fatalf("version = %d dirty = %v, want %d clean", version, dirty, commands.Latest())
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("schema_migrations rows = %d, want 1", count)
	}
}
