package entity

import (
	"github.com/uptrace/bun"
)

// User is a stored credential. Password holds the bcrypt hash.
type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	Username string `json:"username" bun:"username"`
	Password string `json:"-"        bun:"password"`
	Role     string `json:"role"     bun:"role"`
}
