package auth

import (
	"context"

	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/repository/postgres/user"
)

type User interface {
	Authenticate(ctx context.Context, username, password string) (entity.User, error)
	Create(ctx context.Context, request user.CreateRequest) (entity.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}
