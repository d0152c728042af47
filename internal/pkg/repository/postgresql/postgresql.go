// Package postgresql owns the bun connection shared by all repositories.
package postgresql

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/auth"
)

type Database struct {
	*bun.DB
}

type Config struct {
	DSN   string
	Debug bool
}

// NewDB opens a pool against Postgres and verifies it with a ping.
func NewDB(ctx context.Context, cfg Config) (*Database, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(5*time.Second),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(cfg.Debug),
		bundebug.WithVerbose(cfg.Debug),
	))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "connecting to database")
	}

	return &Database{DB: db}, nil
}

// New wraps an already opened bun.DB.
func New(db *bun.DB) *Database {
	return &Database{DB: db}
}

// CheckClaims returns the claims put into ctx by the authentication
// middleware. When roles are given the claims must hold one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("Invalid token"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("Access denied"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct validates the named fields of request.
func (d Database) ValidateStruct(request any, fields ...string) error {
	return web.ValidateStruct(request, fields...)
}

// DeleteRow removes the row with the given id from table and reports
// whether anything was deleted.
func (d Database) DeleteRow(ctx context.Context, table string, id string) (bool, error) {
	res, err := d.NewDelete().Table(table).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, errors.Wrapf(err, "deleting from %s", table)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrapf(err, "deleting from %s", table)
	}

	return n > 0, nil
}
