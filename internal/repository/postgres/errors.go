package postgres

import "github.com/pkg/errors"

// ErrNotFound is returned, usually inside a web.Error, when a lookup matches
// no row.
var ErrNotFound = errors.New("not found")
