package employee

// Filter narrows a search. Unset fields do not constrain the result; set
// fields are combined with AND.
type Filter struct {
	Name  *string
	ID    *string
	Phone *string
}

type CreateRequest struct {
	Name               string  `json:"name"               validate:"required"`
	Phone              string  `json:"phone"              validate:"required"`
	CompanyCode        string  `json:"companyCode"        validate:"required"`
	ReportingManagerID *string `json:"reportingManagerId"`
}

// UpdateRequest replaces the fields that are set. An empty
// ReportingManagerID clears the manager link.
type UpdateRequest struct {
	ID                 string  `json:"-"`
	Name               *string `json:"name"`
	Phone              *string `json:"phone"`
	CompanyCode        *string `json:"companyCode"`
	ReportingManagerID *string `json:"reportingManagerId"`
}
