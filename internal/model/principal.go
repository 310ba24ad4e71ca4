package model

import "github.com/google/uuid"

// Role is an authenticated principal's authorization level.
type Role string

const (
	RoleUser           Role = "user"
	RoleContentCreator Role = "content-creator"
	RoleProductManager Role = "product-manager"
	RoleAdmin          Role = "admin"
)

// Principal is the authenticated actor of a request, extracted from the JWT
// by the auth middleware. The core components never authorize; they only
// assume a validated principal or anonymous id.
type Principal struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}
