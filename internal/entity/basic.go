package entity

import "time"

type BasicEntity struct {
	ID        string     `json:"id"                  bun:"id,pk"`
	CreatedAt time.Time  `json:"createdAt"           bun:"created_at,notnull"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bun:"updated_at"`
}
