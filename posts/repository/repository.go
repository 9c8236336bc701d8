// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/posts/models"
)

// PostFilter represents filtering criteria for querying posts
type PostFilter struct {
	AuthorID   *uuid.UUID
	AuthorName string
	SearchText string
	SortBy     string // "created_at" | "votes"
	SortOrder  string // "asc" | "desc"
}

// PostRepository defines the interface for post-specific database operations
type PostRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *models.Post) error

	// FindByID retrieves a post by its ID. Wraps sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// Find retrieves posts matching the filter criteria with pagination
	Find(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)

	// Count returns the number of posts matching the filter criteria
	Count(ctx context.Context, filter PostFilter) (int64, error)

	// IncrementVotes atomically applies a relative delta to the votes counter
	// and returns the resulting value. Wraps sql.ErrNoRows when the post is gone.
	IncrementVotes(ctx context.Context, postID uuid.UUID, delta int) (int, error)

	// Delete hard-deletes a post; dependent rows cascade at the store.
	// Wraps sql.ErrNoRows when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveExisting returns the subset of the given ids that reference
	// existing posts.
	ResolveExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// DeleteMany hard-deletes the given posts and returns the deleted count.
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)

	// DeleteByAuthor hard-deletes every post authored by the user and
	// returns the deleted count.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// CountByAuthor returns the number of posts authored by the user.
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}
