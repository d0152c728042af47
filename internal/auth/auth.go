// Package auth issues and verifies the signed tokens presented on every
// authorized request.
package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Roles a credential can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = time.Hour

type ctxKey int

// Key is used to store and retrieve Claims from a context.Context.
const Key ctxKey = 1

// UserKey is used to store the credential resolved for the request.
const UserKey ctxKey = 2

// ErrInvalidToken covers bad signatures, malformed and expired tokens.
var ErrInvalidToken = errors.New("Invalid token")

// Claims is the payload of the token: the credential id and its role.
type Claims struct {
	jwt.StandardClaims
	UserId string `json:"userId"`
	Role   string `json:"role"`
}

// Authorized returns true if the claims hold at least one of the roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, has := range roles {
		if c.Role == has {
			return true
		}
	}
	return false
}

// Auth signs tokens with a shared HMAC secret.
type Auth struct {
	key    []byte
	ttl    time.Duration
	method jwt.SigningMethod
	now    func() time.Time
}

func New(secret string, ttl time.Duration) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &Auth{
		key:    []byte(secret),
		ttl:    ttl,
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}, nil
}

// GenerateToken signs a token for the credential id and role.
func (a *Auth) GenerateToken(userID, role string) (string, error) {
	now := a.now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(a.ttl).Unix(),
		},
		UserId: userID,
		Role:   role,
	}

	str, err := jwt.NewWithClaims(a.method, claims).SignedString(a.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return str, nil
}

// ValidateToken checks the signature and expiry of tokenStr.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != a.method.Alg() {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.UserId == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// GetClaims returns the claims stored in ctx by the authentication middleware.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(Key).(Claims)
	return claims, ok
}
