package company

import (
	"context"

	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/repository/postgres/company"
)

type Company interface {
	Create(ctx context.Context, request company.CreateRequest) (entity.Company, error)
	UpdateColumns(ctx context.Context, request company.UpdateRequest) (entity.Company, error)
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
}
