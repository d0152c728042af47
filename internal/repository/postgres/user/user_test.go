package user_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/auth"
	"orgdirectory/backend/internal/pkg/repository/postgresql/postgresqltest"
	"orgdirectory/backend/internal/repository/postgres"
	"orgdirectory/backend/internal/repository/postgres/user"
)

func TestCreateHashesAndNormalizesRole(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(postgresqltest.New(t))

	tests := []struct {
		username, role, want string
	}{
		{"alice", "admin", auth.RoleAdmin},
		{"bob", "user", auth.RoleUser},
		{"carol", "superuser", auth.RoleUser},
		{"dave", "ADMIN", auth.RoleUser},
		{"erin", "", auth.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			created, err := repo.Create(ctx, user.CreateRequest{Username: tt.username, Password: "pw1", Role: tt.role})
			if err != nil {
				t.Fatal(err)
			}
			if created.Role != tt.want {
				t.Fatalf("role = %q, want %q", created.Role, tt.want)
			}

			stored, err := repo.GetById(ctx, created.ID)
			if err != nil {
				t.Fatal(err)
			}
			if stored.Role != tt.want || stored.Password == "pw1" {
				t.Fatalf("stored = %+v", stored)
			}
			if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw1")); err != nil {
				t.Fatalf("hash does not match: %v", err)
			}
			if cost, _ := bcrypt.Cost([]byte(stored.Password)); cost != bcrypt.DefaultCost {
				t.Fatalf("cost = %d, want %d", cost, bcrypt.DefaultCost)
			}
		})
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(postgresqltest.New(t))

	if _, err := repo.Create(ctx, user.CreateRequest{Username: "alice", Password: "pw1"}); err != nil {
		t.Fatal(err)
	}

	_, err := repo.Create(ctx, user.CreateRequest{Username: "alice", Password: "other"})
	webErr, ok := web.IsRequestError(err)
	if !ok || webErr.Status != http.StatusBadRequest || !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("err = %v, want 400 username taken", err)
	}
}

func TestCreatePasswordOverBcryptLimit(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(postgresqltest.New(t))

	// 40 runes but 80 bytes.
	_, err := repo.Create(ctx, user.CreateRequest{Username: "alice", Password: strings.Repeat("é", 40)})
	webErr, ok := web.IsRequestError(err)
	if !ok || webErr.Status != http.StatusBadRequest || !errors.Is(err, user.ErrPasswordTooLong) {
		t.Fatalf("err = %v, want 400 password too long", err)
	}

	if _, err := repo.Create(ctx, user.CreateRequest{Username: "bob", Password: strings.Repeat("a", 72)}); err != nil {
		t.Fatalf("72 byte password rejected: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := user.NewRepository(postgresqltest.New(t))

	created, err := repo.Create(ctx, user.CreateRequest{Username: "alice", Password: "pw1", Role: "admin"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.Authenticate(ctx, "alice", "pw1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != created.ID {
		t.Fatalf("id = %s, want %s", got.ID, created.ID)
	}

	_, wrongPassword := repo.Authenticate(ctx, "alice", "nope")
	_, unknownUser := repo.Authenticate(ctx, "mallory", "pw1")

	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown user": unknownUser} {
		webErr, ok := web.IsRequestError(err)
		if !ok || webErr.Status != http.StatusUnauthorized || webErr.Error() != "Invalid credentials" {
			t.Fatalf("%s: err = %v, want 401 Invalid credentials", name, err)
		}
	}
}

func TestGetByIdMissing(t *testing.T) {
	repo := user.NewRepository(postgresqltest.New(t))

	_, err := repo.GetById(context.Background(), "missing")
	if !errors.Is(err, postgres.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
