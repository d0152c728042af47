package company

import (
	"net/http"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/repository/postgres/company"
)

type Controller struct {
	company Company
}

func NewController(company Company) *Controller {
	return &Controller{company}
}

func (uc Controller) Create(c *web.Context) error {
	var request company.CreateRequest

	if err := c.BindFunc(&request, "Name", "Code"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.company.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusCreated)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	var request company.UpdateRequest

	if err := c.BindOptional(&request); err != nil {
		return c.RespondError(err)
	}

	request.Code = c.Param("code")

	response, err := uc.company.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}

// GetByCode answers a miss with a JSON null.
func (uc Controller) GetByCode(c *web.Context) error {
	response, err := uc.company.GetByCode(c.Ctx, c.Param("code"))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(response, http.StatusOK)
}
