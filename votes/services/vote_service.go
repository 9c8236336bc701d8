// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/shared/interfaces"
	voteErrors "github.com/forumkit/forum-api/votes/errors"
	"github.com/forumkit/forum-api/votes/models"
	voteRepository "github.com/forumkit/forum-api/votes/repository"
)

// VoteResult is what a cast operation reports back: the counter value the
// operation itself produced, the caller's vote after the operation (nil when
// toggled off), and which transition happened.
type VoteResult struct {
	Votes    int              `json:"votes"`
	UserVote *models.VoteType `json:"userVote"`
	Action   string           `json:"action"`
}

// VoteService defines the interface for vote operations
type VoteService interface {
	// CastVote creates, switches, or removes a vote on an item and applies
	// the matching delta to the item's counter in the same transaction.
	CastVote(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*VoteResult, error)

	// VoteStatus returns the caller's current vote for each referenced item.
	// Invalid or unknown references are silently omitted.
	VoteStatus(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error)
}

// voteService implements the VoteService interface
type voteService struct {
	voteRepo voteRepository.VoteRepository
	content  interfaces.ContentStore
}

// NewVoteService creates a new instance of the vote service
func NewVoteService(voteRepo voteRepository.VoteRepository, content interfaces.ContentStore) VoteService {
	return &voteService{
		voteRepo: voteRepo,
		content:  content,
	}
}

// CastVote handles all vote transitions atomically:
// - no prior vote: insert, counter delta = score value (+1 up, -1 down)
// - same type again: delete (toggle off), delta = -score value
// - different type: update, delta = new score - old score (+2 or -2)
// The delta is applied as a relative update at the store inside the same
// transaction as the ledger write, so concurrent casts on one item cannot
// lose counter updates.
func (s *voteService) CastVote(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*VoteResult, error) {
	if !ref.Type.IsValid() {
		return nil, fmt.Errorf("%w: %s", voteErrors.ErrInvalidItemType, ref.Type)
	}
	if !voteType.IsValid() {
		return nil, fmt.Errorf("%w: %s (must be up or down)", voteErrors.ErrInvalidVoteType, voteType)
	}

	var result VoteResult

	err := s.content.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.content.Exists(txCtx, ref)
		if err != nil {
			return fmt.Errorf("failed to check item existence: %w", err)
		}
		if !exists {
			return voteErrors.ErrItemNotFound
		}

		existing, err := s.voteRepo.FindByUserAndItem(txCtx, userID, ref)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to find existing vote: %w", err)
		}

		delta := 0

		switch {
		case existing == nil:
			voteID, err := uuid.NewV4()
			if err != nil {
				return fmt.Errorf("failed to generate vote id: %w", err)
			}

			newVote := &models.Vote{
				ID:       voteID,
				UserID:   userID,
				ItemType: ref.Type,
				ItemID:   ref.ID,
				VoteType: voteType,
			}

			created, _, err := s.voteRepo.Upsert(txCtx, newVote)
			if err != nil {
				if errors.Is(err, voteRepository.ErrDuplicateVote) {
					return fmt.Errorf("%w: %v", voteErrors.ErrConcurrentVote, err)
				}
				return fmt.Errorf("failed to create vote: %w", err)
			}
			if !created {
				return fmt.Errorf("expected vote to be created but it was updated")
			}

			delta = voteType.ScoreValue()
			result.UserVote = &newVote.VoteType
			result.Action = models.ActionCreated

		case existing.VoteType == voteType:
			// Toggle off: remove the vote and reverse its contribution.
			deleted, previousType, err := s.voteRepo.Delete(txCtx, userID, ref)
			if err != nil {
				return fmt.Errorf("failed to delete vote: %w", err)
			}
			if !deleted {
				return fmt.Errorf("expected vote to be deleted but it was not found")
			}

			delta = -previousType.ScoreValue()
			result.UserVote = nil
			result.Action = models.ActionRemoved

		default:
			// Switch: update type, delta = new - old (up->down = -2, down->up = +2).
			voteToUpdate := *existing
			voteToUpdate.VoteType = voteType
			created, previousType, err := s.voteRepo.Upsert(txCtx, &voteToUpdate)
			if err != nil {
				if errors.Is(err, voteRepository.ErrDuplicateVote) {
					return fmt.Errorf("%w: %v", voteErrors.ErrConcurrentVote, err)
				}
				return fmt.Errorf("failed to update vote: %w", err)
			}
			if created {
				return fmt.Errorf("expected vote to be updated but it was created")
			}

			delta = voteType.ScoreValue() - previousType.ScoreValue()
			result.UserVote = &voteToUpdate.VoteType
			result.Action = models.ActionUpdated
		}

		votes, err := s.content.IncrementVotes(txCtx, ref, delta)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return voteErrors.ErrItemNotFound
			}
			return fmt.Errorf("failed to increment votes counter: %w", err)
		}
		result.Votes = votes

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// VoteStatus returns the caller's current vote for each referenced item.
// Pure read: no counters move, no rows change.
func (s *voteService) VoteStatus(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error) {
	valid := make([]interfaces.ItemRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Type.IsValid() && ref.ID != uuid.Nil {
			valid = append(valid, ref)
		}
	}

	voteMap, err := s.voteRepo.GetVotesForItems(ctx, userID, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote status: %w", err)
	}

	return voteMap, nil
}
