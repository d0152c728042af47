package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/auth"
	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/repository/postgres"
)

var (
	ErrNoToken      = errors.New("No token provided")
	ErrAccessDenied = errors.New("Access denied")
)

// Users loads the credential a token refers to.
type Users interface {
	GetById(ctx context.Context, id string) (entity.User, error)
}

// Authenticate verifies the bearer token, reloads its credential and lets the
// request through only if the stored role is one of role. The role in the
// token itself is not trusted.
func Authenticate(a *auth.Auth, users Users, role ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			// Expecting: Bearer <token>
			authStr := c.Request.Header.Get("Authorization")

			parts := strings.Fields(authStr)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.RespondError(web.NewRequestError(ErrNoToken, http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			user, err := users.GetById(c.Ctx, claims.UserId)
			if errors.Is(err, postgres.ErrNotFound) {
				return c.RespondError(web.NewRequestError(ErrAccessDenied, http.StatusForbidden))
			}
			if err != nil {
				return c.RespondError(err)
			}

			if len(role) > 0 && !(auth.Claims{Role: user.Role}).Authorized(role...) {
				return c.RespondError(web.NewRequestError(ErrAccessDenied, http.StatusForbidden))
			}

			claims.Role = user.Role
			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)
			c.Ctx = context.WithValue(c.Ctx, auth.UserKey, user)

			return handler(c)
		}

		return h
	}

	return m
}

// CurrentUser returns the credential stored by Authenticate.
func CurrentUser(ctx context.Context) (entity.User, bool) {
	user, ok := ctx.Value(auth.UserKey).(entity.User)
	return user, ok
}
