// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/forumkit/forum-api/shared/interfaces"
)

// MockContentStore is a mock implementation of ContentStore for testing
type MockContentStore struct {
	mock.Mock
}

// Ensure MockContentStore implements ContentStore
var _ interfaces.ContentStore = (*MockContentStore)(nil)

// Exists mocks the Exists method
func (m *MockContentStore) Exists(ctx context.Context, ref interfaces.ItemRef) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

// IncrementVotes mocks the IncrementVotes method
func (m *MockContentStore) IncrementVotes(ctx context.Context, ref interfaces.ItemRef, delta int) (int, error) {
	args := m.Called(ctx, ref, delta)
	return args.Int(0), args.Error(1)
}

// Snippet mocks the Snippet method
func (m *MockContentStore) Snippet(ctx context.Context, ref interfaces.ItemRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

// WithTransaction mocks the WithTransaction method
func (m *MockContentStore) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
