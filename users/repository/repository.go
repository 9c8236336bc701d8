// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/users/models"
)

// UserFilter represents filtering criteria for querying users
type UserFilter struct {
	Search    string // matches username, ILIKE
	Banned    *bool
	Role      *string
	SortBy    string // "created_at" | "username"
	SortOrder string // "asc" | "desc"
}

// UserRepository defines the interface for user-specific database operations.
// The role gate re-reads through this interface on every gated request, so
// implementations must not cache rows.
type UserRepository interface {
	// FindByID retrieves a user by id. Wraps sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByUsername retrieves a user by username. Wraps sql.ErrNoRows when absent.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// SetBanned updates the ban flag. Wraps sql.ErrNoRows when the user is absent.
	SetBanned(ctx context.Context, id uuid.UUID, banned bool) error

	// Find retrieves users matching the filter with pagination
	Find(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, error)

	// Count returns the number of users matching the filter
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// CountBanned returns the number of currently banned users
	CountBanned(ctx context.Context) (int64, error)
}
