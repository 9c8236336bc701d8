// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	commentModels "github.com/forumkit/forum-api/comments/models"
	commentRepository "github.com/forumkit/forum-api/comments/repository"
	modModels "github.com/forumkit/forum-api/moderation/models"
	auditRepository "github.com/forumkit/forum-api/moderation/repository"
	postModels "github.com/forumkit/forum-api/posts/models"
	postRepository "github.com/forumkit/forum-api/posts/repository"
	reportModels "github.com/forumkit/forum-api/reports/models"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	"github.com/forumkit/forum-api/shared/interfaces"
	userModels "github.com/forumkit/forum-api/users/models"
	userRepository "github.com/forumkit/forum-api/users/repository"
)

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

var _ userRepository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userModels.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModels.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*userModels.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModels.User), args.Error(1)
}

func (m *MockUserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	args := m.Called(ctx, id, banned)
	return args.Error(0)
}

func (m *MockUserRepository) Find(ctx context.Context, filter userRepository.UserFilter, limit, offset int) ([]*userModels.User, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userModels.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter userRepository.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountBanned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPostRepository is a mock implementation of PostRepository for testing
type MockPostRepository struct {
	mock.Mock
}

var _ postRepository.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) Create(ctx context.Context, post *postModels.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*postModels.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postModels.Post), args.Error(1)
}

func (m *MockPostRepository) Find(ctx context.Context, filter postRepository.PostFilter, limit, offset int) ([]*postModels.Post, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*postModels.Post), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context, filter postRepository.PostFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) IncrementVotes(ctx context.Context, postID uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, postID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ResolveExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPostRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock implementation of CommentRepository for testing
type MockCommentRepository struct {
	mock.Mock
}

var _ commentRepository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) Create(ctx context.Context, comment *commentModels.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*commentModels.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commentModels.Comment), args.Error(1)
}

func (m *MockCommentRepository) Find(ctx context.Context, filter commentRepository.CommentFilter, limit, offset int) ([]*commentModels.Comment, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*commentModels.Comment), args.Error(1)
}

func (m *MockCommentRepository) Count(ctx context.Context, filter commentRepository.CommentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) IncrementVotes(ctx context.Context, commentID uuid.UUID, delta int) (int, error) {
	args := m.Called(ctx, commentID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) ResolveExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCommentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportRepository is a mock implementation of ReportRepository for testing
type MockReportRepository struct {
	mock.Mock
}

var _ reportRepository.ReportRepository = (*MockReportRepository)(nil)

func (m *MockReportRepository) Create(ctx context.Context, report *reportModels.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*reportModels.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportModels.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status reportModels.ReportStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReportRepository) Find(ctx context.Context, filter reportRepository.ReportFilter, limit, offset int) ([]*reportModels.ReportWithReporter, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reportModels.ReportWithReporter), args.Error(1)
}

func (m *MockReportRepository) Count(ctx context.Context, filter reportRepository.ReportFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportRepository) CountPendingByItemType(ctx context.Context) (map[interfaces.ItemType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[interfaces.ItemType]int64), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepository for testing
type MockAuditRepository struct {
	mock.Mock
}

var _ auditRepository.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) Append(ctx context.Context, entry *modModels.ModerationLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) Find(ctx context.Context, filter auditRepository.AuditFilter, limit, offset int) ([]*modModels.ModerationLogWithModerator, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*modModels.ModerationLogWithModerator), args.Error(1)
}

func (m *MockAuditRepository) Count(ctx context.Context, filter auditRepository.AuditFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockContentStore is a mock implementation of ContentStore for testing
type MockContentStore struct {
	mock.Mock
}

var _ interfaces.ContentStore = (*MockContentStore)(nil)

func (m *MockContentStore) Exists(ctx context.Context, ref interfaces.ItemRef) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

func (m *MockContentStore) IncrementVotes(ctx context.Context, ref interfaces.ItemRef, delta int) (int, error) {
	args := m.Called(ctx, ref, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockContentStore) Snippet(ctx context.Context, ref interfaces.ItemRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

func (m *MockContentStore) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
