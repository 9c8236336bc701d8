// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/forumkit/forum-api/internal/database/postgres"
	"github.com/forumkit/forum-api/shared/interfaces"
	"github.com/forumkit/forum-api/votes/models"
)

// ErrDuplicateVote is returned when an insert loses the race against a
// concurrent cast for the same (user, item) and hits the unique constraint.
var ErrDuplicateVote = errors.New("duplicate vote")

// postgresVoteRepository implements VoteRepository using raw SQL queries
type postgresVoteRepository struct {
	client *postgres.Client
}

// NewPostgresVoteRepository creates a new PostgreSQL repository for votes
func NewPostgresVoteRepository(client *postgres.Client) VoteRepository {
	return &postgresVoteRepository{client: client}
}

// FindByUserAndItem retrieves a user's vote on a specific item
func (r *postgresVoteRepository) FindByUserAndItem(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef) (*models.Vote, error) {
	query := `
		SELECT id, user_id, item_type, item_id, vote_type, created_at
		FROM votes
		WHERE user_id = $1 AND item_type = $2 AND item_id = $3
	`

	var vote models.Vote
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &vote, query, userID, ref.Type, ref.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vote not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return &vote, nil
}

// Upsert inserts a new vote or updates an existing vote's type
func (r *postgresVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, models.VoteType, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}

	existing, err := r.FindByUserAndItem(ctx, vote.UserID, interfaces.ItemRef{Type: vote.ItemType, ID: vote.ItemID})
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return false, "", fmt.Errorf("failed to check existing vote: %w", err)
		}

		// No prior vote: insert. The unique constraint catches the race
		// where another transaction inserted first.
		query := `
			INSERT INTO votes (id, user_id, item_type, item_id, vote_type, created_at)
			VALUES (:id, :user_id, :item_type, :item_id, :vote_type, :created_at)
		`

		if _, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, vote); err != nil {
			if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" { // unique_violation
				return false, "", fmt.Errorf("vote already exists for user %s on %s %s: %w",
					vote.UserID, vote.ItemType, vote.ItemID, ErrDuplicateVote)
			}
			return false, "", fmt.Errorf("failed to insert vote: %w", err)
		}

		return true, "", nil
	}

	previousType := existing.VoteType

	// The update only matches while the row still carries the type we read.
	// If a concurrent transaction changed or removed the vote in between,
	// zero rows match and the caller must not apply a delta based on the
	// stale previousType.
	query := `
		UPDATE votes
		SET vote_type = $1
		WHERE user_id = $2 AND item_type = $3 AND item_id = $4 AND vote_type = $5
	`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, vote.VoteType, vote.UserID, vote.ItemType, vote.ItemID, previousType)
	if err != nil {
		return false, previousType, fmt.Errorf("failed to update vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, previousType, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return false, previousType, fmt.Errorf("vote changed concurrently for user %s on %s %s: %w",
			vote.UserID, vote.ItemType, vote.ItemID, ErrDuplicateVote)
	}

	return false, previousType, nil
}

// Delete removes a vote (toggle off)
func (r *postgresVoteRepository) Delete(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef) (bool, models.VoteType, error) {
	existing, err := r.FindByUserAndItem(ctx, userID, ref)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to find vote: %w", err)
	}

	previousType := existing.VoteType

	query := `
		DELETE FROM votes
		WHERE user_id = $1 AND item_type = $2 AND item_id = $3
	`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, userID, ref.Type, ref.ID)
	if err != nil {
		return false, previousType, fmt.Errorf("failed to delete vote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, previousType, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return false, previousType, nil
	}

	return true, previousType, nil
}

// GetVotesForItems bulk retrieves the user's votes for multiple items.
// One query per item type keeps the lookup to at most two round trips
// regardless of batch size.
func (r *postgresVoteRepository) GetVotesForItems(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error) {
	voteMap := make(map[interfaces.ItemRef]models.VoteType, len(refs))
	if len(refs) == 0 {
		return voteMap, nil
	}

	byType := make(map[interfaces.ItemType][]string)
	for _, ref := range refs {
		if !ref.Type.IsValid() {
			continue
		}
		byType[ref.Type] = append(byType[ref.Type], ref.ID.String())
	}

	query := `
		SELECT item_id, vote_type
		FROM votes
		WHERE user_id = $1 AND item_type = $2 AND item_id = ANY($3::uuid[])
	`

	type voteResult struct {
		ItemID   uuid.UUID       `db:"item_id"`
		VoteType models.VoteType `db:"vote_type"`
	}

	for itemType, ids := range byType {
		var results []voteResult
		err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &results, query, userID, itemType, pq.Array(ids))
		if err != nil {
			return nil, fmt.Errorf("failed to get votes for %ss: %w", itemType, err)
		}

		for _, result := range results {
			voteMap[interfaces.ItemRef{Type: itemType, ID: result.ItemID}] = result.VoteType
		}
	}

	return voteMap, nil
}
