package user

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignUpRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"`
}

type CreateRequest struct {
	Username string
	Password string
	Role     string
}
