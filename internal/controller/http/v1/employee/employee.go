package employee

import (
	"fmt"
	"net/http"
	"time"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/repository/postgres/employee"
	"orgdirectory/backend/internal/service"
)

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee}
}

func filterFromQuery(c *web.Context) employee.Filter {
	return employee.Filter{
		Name:  c.GetQueryFunc("name"),
		ID:    c.GetQueryFunc("id"),
		Phone: c.GetQueryFunc("phone"),
	}
}

func (uc Controller) Search(c *web.Context) error {
	list, err := uc.employee.GetList(c.Ctx, filterFromQuery(c))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(list, http.StatusOK)
}

// Export sends the search result as an xlsx download.
func (uc Controller) Export(c *web.Context) error {
	list, err := uc.employee.GetList(c.Ctx, filterFromQuery(c))
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.EmployeesToExcel(list)
	if err != nil {
		return c.RespondError(err)
	}

	fileName := fmt.Sprintf("employees-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, service.ExcelContentType, data)

	return nil
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "Name", "Phone", "CompanyCode"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusCreated)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	var request employee.UpdateRequest

	if err := c.BindOptional(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = c.Param("id")

	response, err := uc.employee.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	response, err := uc.employee.Delete(c.Ctx, c.Param("id"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

func (uc Controller) GetSubordinates(c *web.Context) error {
	list, err := uc.employee.GetSubordinates(c.Ctx, c.Param("id"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"subordinates": list,
	}, http.StatusOK)
}

func (uc Controller) GetReportingManager(c *web.Context) error {
	manager, err := uc.employee.GetReportingManager(c.Ctx, c.Param("id"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"manager": manager,
	}, http.StatusOK)
}
