package auth

import (
	"net/http"

	"orgdirectory/backend/foundation/web"
	"orgdirectory/backend/internal/repository/postgres/user"
)

type Controller struct {
	user   User
	tokens TokenIssuer
}

func NewController(user User, tokens TokenIssuer) *Controller {
	return &Controller{user: user, tokens: tokens}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data user.SignInRequest

	if err := c.BindFunc(&data, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.Authenticate(c.Ctx, data.Username, data.Password)
	if err != nil {
		return c.RespondError(err)
	}

	token, err := uc.tokens.GenerateToken(detail.ID, detail.Role)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]string{
		"token": token,
	}, http.StatusOK)
}

func (uc Controller) SignUp(c *web.Context) error {
	var data user.SignUpRequest

	if err := c.BindFunc(&data, "Username", "Password"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.Create(c.Ctx, user.CreateRequest{
		Username: data.Username,
		Password: data.Password,
		Role:     data.Role,
	})
	if err != nil {
		return c.RespondError(err)
	}

	token, err := uc.tokens.GenerateToken(detail.ID, detail.Role)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]string{
		"message": "User created successfully",
		"token":   token,
	}, http.StatusCreated)
}
