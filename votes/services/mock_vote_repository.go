// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/forumkit/forum-api/shared/interfaces"
	"github.com/forumkit/forum-api/votes/models"
	voteRepository "github.com/forumkit/forum-api/votes/repository"
)

// MockVoteRepository is a mock implementation of VoteRepository for testing
type MockVoteRepository struct {
	mock.Mock
}

// Ensure MockVoteRepository implements VoteRepository
var _ voteRepository.VoteRepository = (*MockVoteRepository)(nil)

// FindByUserAndItem mocks the FindByUserAndItem method
func (m *MockVoteRepository) FindByUserAndItem(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef) (*models.Vote, error) {
	args := m.Called(ctx, userID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

// Upsert mocks the Upsert method
func (m *MockVoteRepository) Upsert(ctx context.Context, vote *models.Vote) (bool, models.VoteType, error) {
	args := m.Called(ctx, vote)
	return args.Bool(0), args.Get(1).(models.VoteType), args.Error(2)
}

// Delete mocks the Delete method
func (m *MockVoteRepository) Delete(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef) (bool, models.VoteType, error) {
	args := m.Called(ctx, userID, ref)
	return args.Bool(0), args.Get(1).(models.VoteType), args.Error(2)
}

// GetVotesForItems mocks the GetVotesForItems method
func (m *MockVoteRepository) GetVotesForItems(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error) {
	args := m.Called(ctx, userID, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[interfaces.ItemRef]models.VoteType), args.Error(1)
}
