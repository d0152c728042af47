package company

type CreateRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// UpdateRequest replaces the fields that are set. Code selects the row and
// is never changed.
type UpdateRequest struct {
	Code string  `json:"-"`
	Name *string `json:"name"`
}
