package company

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/pkg/repository/postgresql"
)

var ErrNotFound = errors.New("Company not found")

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Company, error) {
	if err := r.ValidateStruct(&request, "Name", "Code"); err != nil {
		return entity.Company{}, err
	}

	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Company{}, err
	}

	detail := entity.Company{
		Name:      request.Name,
		Code:      request.Code,
		CreatedBy: &claims.UserId,
	}
	detail.ID = uuid.NewString()
	detail.CreatedAt = time.Now().UTC()

	// A duplicate code fails on the unique index and is reported like any
	// other store failure.
	if _, err = r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return entity.Company{}, errors.Wrap(err, "creating company")
	}

	return detail, nil
}

// GetByCode returns nil without an error when no company has the code.
func (r Repository) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	var detail entity.Company

	err := r.NewSelect().Model(&detail).Where("code = ?", code).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting company")
	}

	return &detail, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.Company, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return entity.Company{}, err
	}

	q := r.NewUpdate().Table("companies").Where("code = ?", request.Code)

	if request.Name != nil {
		q.Set("name = ?", *request.Name)
	}
	q.Set("updated_at = ?", time.Now().UTC())

	res, err := q.Exec(ctx)
	if err != nil {
		return entity.Company{}, errors.Wrap(err, "updating company")
	}
	if n, err := res.RowsAffected(); err != nil {
		return entity.Company{}, errors.Wrap(err, "updating company")
	} else if n == 0 {
		return entity.Company{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	detail, err := r.GetByCode(ctx, request.Code)
	if err != nil {
		return entity.Company{}, err
	}
	if detail == nil {
		return entity.Company{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	return *detail, nil
}
