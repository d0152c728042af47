package user

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/auth"
	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/pkg/repository/postgresql"
	"orgdirectory/backend/internal/repository/postgres"
)

var (
	// ErrUsernameTaken is returned by Create when the username already exists.
	ErrUsernameTaken = errors.New("Username is already taken")
	// ErrInvalidCredentials is the single login failure.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72 byte input.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// NormalizeRole keeps "admin" and "user" and maps everything else to "user".
func NormalizeRole(role string) string {
	if role == auth.RoleAdmin || role == auth.RoleUser {
		return role
	}
	return auth.RoleUser
}

func (r Repository) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("username = ?", username).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.User{}, errors.Wrap(err, "selecting user by username")
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.User{}, errors.Wrap(err, "selecting user by id")
	}

	return detail, nil
}

// Create stores a new credential with a bcrypt hash of the password.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.User, error) {
	exists, err := r.NewSelect().Model((*entity.User)(nil)).Where("username = ?", request.Username).Exists(ctx)
	if err != nil {
		return entity.User{}, errors.Wrap(err, "username check")
	}
	if exists {
		return entity.User{}, web.NewRequestError(ErrUsernameTaken, http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return entity.User{}, web.NewRequestError(ErrPasswordTooLong, http.StatusBadRequest)
	}
	if err != nil {
		return entity.User{}, errors.Wrap(err, "hashing password")
	}

	detail := entity.User{
		Username: request.Username,
		Password: string(hash),
		Role:     NormalizeRole(request.Role),
	}
	detail.ID = uuid.NewString()
	detail.CreatedAt = time.Now().UTC()

	if _, err = r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return entity.User{}, errors.Wrap(err, "creating user")
	}

	return detail, nil
}

// Authenticate returns the credential for username if password matches its
// hash. Unknown users and wrong passwords give the same error.
func (r Repository) Authenticate(ctx context.Context, username, password string) (entity.User, error) {
	detail, err := r.GetByUsername(ctx, username)
	if errors.Is(err, postgres.ErrNotFound) {
		return entity.User{}, web.NewRequestError(ErrInvalidCredentials, http.StatusUnauthorized)
	}
	if err != nil {
		return entity.User{}, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(detail.Password), []byte(password)); err != nil {
		return entity.User{}, web.NewRequestError(ErrInvalidCredentials, http.StatusUnauthorized)
	}

	return detail, nil
}
