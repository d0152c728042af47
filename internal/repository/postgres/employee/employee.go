package employee

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/entity"
	"orgdirectory/backend/internal/pkg/repository/postgresql"
)

var (
	ErrCompanyNotFound   = errors.New("Company does not exist")
	ErrNotFound          = errors.New("Employee not found")
	ErrManagerNotFound   = errors.New("Reporting manager not found")
	ErrNoSubordinates    = errors.New("No subordinates found")
	ErrManagerMismatched = errors.New("Reporting manager not found or companyCode mismatch")
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetById returns nil without an error when the id matches nothing.
func (r Repository) GetById(ctx context.Context, id string) (*entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "selecting employee")
	}

	return &detail, nil
}

// Create inserts an employee after checking its company exists. The check and
// the insert are separate statements.
func (r Repository) Create(ctx context.Context, request CreateRequest) (entity.Employee, error) {
	if err := r.ValidateStruct(&request, "Name", "Phone", "CompanyCode"); err != nil {
		return entity.Employee{}, err
	}

	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Employee{}, err
	}

	exists, err := r.NewSelect().Model((*entity.Company)(nil)).Where("code = ?", request.CompanyCode).Exists(ctx)
	if err != nil {
		return entity.Employee{}, errors.Wrap(err, "company check")
	}
	if !exists {
		return entity.Employee{}, web.NewRequestError(ErrCompanyNotFound, http.StatusInternalServerError)
	}

	detail := entity.Employee{
		Name:               request.Name,
		Phone:              request.Phone,
		CompanyCode:        request.CompanyCode,
		ReportingManagerID: emptyToNil(request.ReportingManagerID),
		CreatedBy:          &claims.UserId,
	}
	detail.ID = uuid.NewString()
	detail.CreatedAt = time.Now().UTC()

	if _, err = r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return entity.Employee{}, errors.Wrap(err, "creating employee")
	}

	return detail, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.Employee, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return entity.Employee{}, err
	}

	q := r.NewUpdate().Table("employees").Where("id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", *request.Name)
	}
	if request.Phone != nil {
		q.Set("phone = ?", *request.Phone)
	}
	if request.CompanyCode != nil {
		q.Set("company_code = ?", *request.CompanyCode)
	}
	if request.ReportingManagerID != nil {
		q.Set("reporting_manager_id = ?", emptyToNil(request.ReportingManagerID))
	}
	q.Set("updated_at = ?", time.Now().UTC())

	res, err := q.Exec(ctx)
	if err != nil {
		return entity.Employee{}, errors.Wrap(err, "updating employee")
	}
	if n, err := res.RowsAffected(); err != nil {
		return entity.Employee{}, errors.Wrap(err, "updating employee")
	} else if n == 0 {
		return entity.Employee{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	detail, err := r.GetById(ctx, request.ID)
	if err != nil {
		return entity.Employee{}, err
	}
	if detail == nil {
		return entity.Employee{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	return *detail, nil
}

// Delete removes the employee and returns the record as it was.
func (r Repository) Delete(ctx context.Context, id string) (entity.Employee, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return entity.Employee{}, err
	}

	detail, err := r.GetById(ctx, id)
	if err != nil {
		return entity.Employee{}, err
	}
	if detail == nil {
		return entity.Employee{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	deleted, err := r.DeleteRow(ctx, "employees", id)
	if err != nil {
		return entity.Employee{}, err
	}
	if !deleted {
		return entity.Employee{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	return *detail, nil
}

// GetList returns the employees matching every set field of filter in the
// store's natural order. Name matches as a case-insensitive substring.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Employee, error) {
	list := make([]entity.Employee, 0)

	q := r.NewSelect().Model(&list)

	if filter.Name != nil {
		q.Where("LOWER(name) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(*filter.Name))+"%")
	}
	if filter.ID != nil {
		q.Where("id = ?", *filter.ID)
	}
	if filter.Phone != nil {
		q.Where("phone = ?", *filter.Phone)
	}

	if err := q.Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "selecting employees")
	}

	return list, nil
}

// GetSubordinates lists the direct reports of managerID that share the
// manager's company code.
func (r Repository) GetSubordinates(ctx context.Context, managerID string) ([]entity.Employee, error) {
	manager, err := r.GetById(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, web.NewRequestError(ErrManagerNotFound, http.StatusNotFound)
	}

	list := make([]entity.Employee, 0)
	err = r.NewSelect().
		Model(&list).
		Where("reporting_manager_id = ?", manager.ID).
		Where("company_code = ?", manager.CompanyCode).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "selecting subordinates")
	}

	if len(list) == 0 {
		return nil, web.NewRequestError(ErrNoSubordinates, http.StatusNotFound)
	}

	return list, nil
}

// GetReportingManager returns the manager of employeeID if the manager is in
// the same company. A missing manager and a company mismatch are reported
// the same way.
func (r Repository) GetReportingManager(ctx context.Context, employeeID string) (entity.Employee, error) {
	employee, err := r.GetById(ctx, employeeID)
	if err != nil {
		return entity.Employee{}, err
	}
	if employee == nil {
		return entity.Employee{}, web.NewRequestError(ErrNotFound, http.StatusNotFound)
	}

	if employee.ReportingManagerID == nil {
		return entity.Employee{}, web.NewRequestError(ErrManagerMismatched, http.StatusNotFound)
	}

	var manager entity.Employee
	err = r.NewSelect().
		Model(&manager).
		Where("id = ?", *employee.ReportingManagerID).
		Where("company_code = ?", employee.CompanyCode).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Employee{}, web.NewRequestError(ErrManagerMismatched, http.StatusNotFound)
	}
	if err != nil {
		return entity.Employee{}, errors.Wrap(err, "selecting reporting manager")
	}

	return manager, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
