package employee

import (
	"context"

	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/repository/postgres/employee"
)

type Employee interface {
	GetList(ctx context.Context, filter employee.Filter) ([]entity.Employee, error)
	GetSubordinates(ctx context.Context, managerID string) ([]entity.Employee, error)
	GetReportingManager(ctx context.Context, employeeID string) (entity.Employee, error)

	Create(ctx context.Context, request employee.CreateRequest) (entity.Employee, error)
	UpdateColumns(ctx context.Context, request employee.UpdateRequest) (entity.Employee, error)
	Delete(ctx context.Context, id string) (entity.Employee, error)
}
