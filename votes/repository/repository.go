// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/shared/interfaces"
	"github.com/forumkit/forum-api/votes/models"
)

// VoteRepository defines the interface for vote-specific database operations.
// Callers compose these inside a store transaction; the unique constraint on
// (user_id, item_type, item_id) is the backstop for concurrent casts.
type VoteRepository interface {
	// FindByUserAndItem retrieves a user's vote on a specific item.
	// Wraps sql.ErrNoRows when no vote exists.
	FindByUserAndItem(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef) (*models.Vote, error)

	// Upsert inserts a new vote or updates an existing vote's type.
	// Returns (created, previousType): created=true means a new row was
	// inserted and previousType is empty; created=false means an existing
	// row's type was changed and previousType is the type before the update.
	Upsert(ctx context.Context, vote *models.Vote) (bool, models.VoteType, error)

	// Delete removes a vote (toggle off).
	// Returns (deleted, previousType): deleted=false means no vote existed.
	Delete(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef) (bool, models.VoteType, error)

	// GetVotesForItems bulk retrieves the user's votes for multiple items.
	// Items the user has not voted on are absent from the result, as are
	// references to rows that do not exist.
	GetVotesForItems(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error)
}
