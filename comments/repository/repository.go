// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/comments/models"
)

// CommentFilter represents filtering criteria for querying comments
type CommentFilter struct {
	PostID     *uuid.UUID
	AuthorID   *uuid.UUID
	AuthorName string
	SearchText string
	SortBy     string // "created_at" | "votes"
	SortOrder  string // "asc" | "desc"
}

// CommentRepository defines the interface for comment-specific database operations
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its ID. Wraps sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// Find retrieves comments matching the filter criteria with pagination
	Find(ctx context.Context, filter CommentFilter, limit, offset int) ([]*models.Comment, error)

	// Count returns the number of comments matching the filter criteria
	Count(ctx context.Context, filter CommentFilter) (int64, error)

	// IncrementVotes atomically applies a relative delta to the votes counter
	// and returns the resulting value. Wraps sql.ErrNoRows when the comment is gone.
	IncrementVotes(ctx context.Context, commentID uuid.UUID, delta int) (int, error)

	// Delete hard-deletes a comment. Wraps sql.ErrNoRows when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveExisting returns the subset of the given ids that reference
	// existing comments.
	ResolveExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// DeleteMany hard-deletes the given comments and returns the deleted count.
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)

	// DeleteByAuthor hard-deletes every comment authored by the user and
	// returns the deleted count.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// CountByAuthor returns the number of comments authored by the user.
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}
