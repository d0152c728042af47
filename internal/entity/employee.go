package entity

import (
	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	BasicEntity
	Name               string  `json:"name"               bun:"name"`
	Phone              string  `json:"phone"              bun:"phone"`
	CompanyCode        string  `json:"companyCode"        bun:"company_code"`
	ReportingManagerID *string `json:"reportingManagerId" bun:"reporting_manager_id"`
	CreatedBy          *string `json:"-"                  bun:"created_by"`
}
