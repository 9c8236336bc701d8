package types

import (
	uuid "github.com/gofrs/uuid"
)

// HTTP Header Constants
const (
	HeaderUID           = "uid"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// Authentication Constants
const (
	BearerPrefix = "Bearer "
)

// Role values stored in users.role
const (
	UserRole      = "user"
	ModeratorRole = "moderator"
	AdminRole     = "admin"
)

// UserCtxName is the fiber.Ctx locals key holding the authenticated principal.
const UserCtxName = "user"

// UserContext is the authenticated principal attached to a request after
// token resolution. It carries identity only; authorization decisions
// (role, ban state) are always re-read from the store.
type UserContext struct {
	UserID     uuid.UUID `json:"uid"`
	Username   string    `json:"username"`
	SystemRole string    `json:"role"`
}

// IsModeratorRole reports whether the given role value grants moderation
// privileges.
func IsModeratorRole(role string) bool {
	return role == ModeratorRole || role == AdminRole
}
