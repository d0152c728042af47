package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"orgdirectory/backend/internal/pkg/repository/postgresql"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

// The statements stay within the SQL shared by Postgres and SQLite so the
// same scheme backs the test database.
var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id text primary key,
            username text not null unique,
            password text not null,
            role text not null default 'user',
            created_at timestamp not null,
            updated_at timestamp
        );`,
	},
	{
		Index:       2,
		Description: "Create table: companies.",
		Query: `
        CREATE TABLE IF NOT EXISTS companies (
            id text primary key,
            name text not null,
            code text not null unique,
            created_at timestamp not null,
            created_by text,
            updated_at timestamp
        );`,
	},
	{
		Index:       3,
		Description: "Create table: employees.",
		Query: `
        CREATE TABLE IF NOT EXISTS employees (
            id text primary key,
            name text not null,
            phone text not null,
            company_code text not null,
            reporting_manager_id text,
            created_at timestamp not null,
            created_by text,
            updated_at timestamp
        );`,
	},
	{
		Index:       4,
		Description: "Index employees by company code.",
		Query:       `CREATE INDEX IF NOT EXISTS employees_company_code_idx ON employees (company_code);`,
	},
	{
		Index:       5,
		Description: "Index employees by reporting manager.",
		Query:       `CREATE INDEX IF NOT EXISTS employees_reporting_manager_idx ON employees (reporting_manager_id, company_code);`,
	},
}

// Latest is the version the database ends at after MigrateUP.
func Latest() int {
	return scheme[len(scheme)-1].Index
}

// MigrateUP applies every scheme entry above the recorded version. A failed
// entry leaves the table dirty at that version so the next run retries it.
func MigrateUP(ctx context.Context, db *postgresql.Database) error {
	if _, err := db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty boolean not null, error text)`); err != nil {
		return errors.Wrap(err, "creating schema_migrations")
	}

	version, dirty, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range scheme {
		if s.Index < version || (s.Index == version && !dirty) {
			continue
		}

		if _, err = db.ExecContext(ctx, s.Query); err != nil {
			if _, uerr := db.ExecContext(ctx,
				`UPDATE schema_migrations SET version = ?, dirty = ?, error = ?`, s.Index, true, err.Error()); uerr != nil {
				return errors.Wrap(uerr, "recording migration error")
			}
			return errors.Wrap(err, fmt.Sprintf("migrate version %d (%s)", s.Index, s.Description))
		}

		if _, err = db.ExecContext(ctx,
			`UPDATE schema_migrations SET version = ?, dirty = ?, error = NULL`, s.Index, false); err != nil {
			return errors.Wrap(err, "recording migration version")
		}
	}

	return nil
}

// Version returns the recorded schema version.
func Version(ctx context.Context, db *postgresql.Database) (int, bool, error) {
	return currentVersion(ctx, db)
}

func currentVersion(ctx context.Context, db *postgresql.Database) (int, bool, error) {
	var (
		version int
		dirty   bool
	)

	err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err = db.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, 0, false); err != nil {
			return 0, false, errors.Wrap(err, "initialising schema_migrations")
		}
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "reading schema_migrations")
	}

	return version, dirty, nil
}
