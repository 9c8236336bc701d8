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
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	commentModels "github.com/forumkit/forum-api/comments/models"
	modErrors "github.com/forumkit/forum-api/moderation/errors"
	modModels "github.com/forumkit/forum-api/moderation/models"
	postModels "github.com/forumkit/forum-api/posts/models"
	reportModels "github.com/forumkit/forum-api/reports/models"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	"github.com/forumkit/forum-api/shared/interfaces"
	userModels "github.com/forumkit/forum-api/users/models"
)

type moderationMocks struct {
	userRepo    *MockUserRepository
	postRepo    *MockPostRepository
	commentRepo *MockCommentRepository
	reportRepo  *MockReportRepository
	auditRepo   *MockAuditRepository
	content     *MockContentStore
}

func newModerationService() (ModerationService, *moderationMocks) {
	m := &moderationMocks{
		userRepo:    new(MockUserRepository),
		postRepo:    new(MockPostRepository),
		commentRepo: new(MockCommentRepository),
		reportRepo:  new(MockReportRepository),
		auditRepo:   new(MockAuditRepository),
		content:     new(MockContentStore),
	}
	service := NewModerationService(m.userRepo, m.postRepo, m.commentRepo, m.reportRepo, m.auditRepo, m.content)
	return service, m
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s not found: %w", what, sql.ErrNoRows)
}

func TestModerationService_DismissReport(t *testing.T) {
	ctx := context.Background()
	moderatorID := uuid.Must(uuid.NewV4())
	reportID := uuid.Must(uuid.NewV4())

	report := &reportModels.Report{
		ID:         reportID,
		ReporterID: uuid.Must(uuid.NewV4()),
		ItemType:   interfaces.ItemTypeComment,
		ItemID:     uuid.Must(uuid.NewV4()),
		Status:     reportModels.StatusPending,
		CreatedAt:  time.Now(),
	}

	t.Run("Dismisses pending report and writes audit entry", func(t *testing.T) {
		service, m := newModerationService()

		m.reportRepo.On("FindByID", ctx, reportID).Return(report, nil)
		m.reportRepo.On("UpdateStatus", ctx, reportID, reportModels.StatusDismissed).Return(nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.ModeratorID == moderatorID &&
				entry.Action == modModels.ActionDismissReport &&
				entry.TargetID != nil && *entry.TargetID == reportID
		})).Return(nil)

		err := service.DismissReport(ctx, moderatorID, reportID)

		assert.NoError(t, err)
		m.reportRepo.AssertExpectations(t)
		m.auditRepo.AssertExpectations(t)
	})

	t.Run("Dismissing an already dismissed report succeeds", func(t *testing.T) {
		service, m := newModerationService()

		dismissed := *report
		dismissed.Status = reportModels.StatusDismissed
		m.reportRepo.On("FindByID", ctx, reportID).Return(&dismissed, nil)
		m.reportRepo.On("UpdateStatus", ctx, reportID, reportModels.StatusDismissed).Return(nil)
		m.auditRepo.On("Append", ctx, mock.Anything).Return(nil)

		err := service.DismissReport(ctx, moderatorID, reportID)

		assert.NoError(t, err)
		m.reportRepo.AssertExpectations(t)
	})

	t.Run("Missing report", func(t *testing.T) {
		service, m := newModerationService()

		m.reportRepo.On("FindByID", ctx, reportID).Return(nil, notFoundErr("report"))

		err := service.DismissReport(ctx, moderatorID, reportID)

		assert.ErrorIs(t, err, modErrors.ErrReportNotFound)
		m.reportRepo.AssertNotCalled(t, "UpdateStatus")
		m.auditRepo.AssertNotCalled(t, "Append")
	})

	t.Run("Audit failure does not fail the action", func(t *testing.T) {
		service, m := newModerationService()

		m.reportRepo.On("FindByID", ctx, reportID).Return(report, nil)
		m.reportRepo.On("UpdateStatus", ctx, reportID, reportModels.StatusDismissed).Return(nil)
		m.auditRepo.On("Append", ctx, mock.Anything).Return(errors.New("log table unavailable"))

		err := service.DismissReport(ctx, moderatorID, reportID)

		assert.NoError(t, err)
		m.auditRepo.AssertExpectations(t)
	})
}

func TestModerationService_DeletePost(t *testing.T) {
	ctx := context.Background()
	moderatorID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	post := &postModels.Post{
		ID:             postID,
		AuthorID:       uuid.Must(uuid.NewV4()),
		AuthorUsername: "alice",
		Title:          "A post that crossed the line",
		Body:           "...",
	}

	t.Run("Deletes post and audits a snapshot", func(t *testing.T) {
		service, m := newModerationService()

		m.postRepo.On("FindByID", ctx, postID).Return(post, nil)
		m.postRepo.On("Delete", ctx, postID).Return(nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.Action == modModels.ActionDeletePost &&
				entry.TargetID != nil && *entry.TargetID == postID &&
				entry.Details != ""
		})).Return(nil)

		err := service.DeletePost(ctx, moderatorID, postID)

		assert.NoError(t, err)
		m.postRepo.AssertExpectations(t)
		m.auditRepo.AssertExpectations(t)
	})

	t.Run("Missing post", func(t *testing.T) {
		service, m := newModerationService()

		m.postRepo.On("FindByID", ctx, postID).Return(nil, notFoundErr("post"))

		err := service.DeletePost(ctx, moderatorID, postID)

		assert.ErrorIs(t, err, modErrors.ErrPostNotFound)
		m.postRepo.AssertNotCalled(t, "Delete")
		m.auditRepo.AssertNotCalled(t, "Append")
	})

	t.Run("Failed delete writes no audit entry", func(t *testing.T) {
		service, m := newModerationService()

		m.postRepo.On("FindByID", ctx, postID).Return(post, nil)
		m.postRepo.On("Delete", ctx, postID).Return(errors.New("store unavailable"))

		err := service.DeletePost(ctx, moderatorID, postID)

		assert.Error(t, err)
		m.auditRepo.AssertNotCalled(t, "Append")
	})
}

func TestModerationService_BulkDeletePosts(t *testing.T) {
	ctx := context.Background()
	moderatorID := uuid.Must(uuid.NewV4())

	t.Run("Deletes only the existing subset", func(t *testing.T) {
		service, m := newModerationService()

		existing := []uuid.UUID{uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())}
		missing := uuid.Must(uuid.NewV4())
		requested := append(append([]uuid.UUID{}, existing...), missing)

		m.postRepo.On("ResolveExisting", ctx, requested).Return(existing, nil)
		m.postRepo.On("DeleteMany", ctx, existing).Return(int64(2), nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.Action == modModels.ActionBulkDeletePosts
		})).Return(nil)

		deleted, err := service.BulkDeletePosts(ctx, moderatorID, requested)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		m.postRepo.AssertExpectations(t)
		m.auditRepo.AssertExpectations(t)
	})

	t.Run("Empty id list", func(t *testing.T) {
		service, m := newModerationService()

		deleted, err := service.BulkDeletePosts(ctx, moderatorID, nil)

		assert.ErrorIs(t, err, modErrors.ErrEmptyIDSet)
		assert.Zero(t, deleted)
		m.postRepo.AssertNotCalled(t, "ResolveExisting")
	})

	t.Run("No requested id exists", func(t *testing.T) {
		service, m := newModerationService()

		requested := []uuid.UUID{uuid.Must(uuid.NewV4())}
		m.postRepo.On("ResolveExisting", ctx, requested).Return([]uuid.UUID{}, nil)

		deleted, err := service.BulkDeletePosts(ctx, moderatorID, requested)

		assert.ErrorIs(t, err, modErrors.ErrNoItemsFound)
		assert.Zero(t, deleted)
		m.postRepo.AssertNotCalled(t, "DeleteMany")
		m.auditRepo.AssertNotCalled(t, "Append")
	})
}

func TestModerationService_BanUnban(t *testing.T) {
	ctx := context.Background()
	moderatorID := uuid.Must(uuid.NewV4())

	activeUser := &userModels.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "bob",
		Role:     userModels.RoleUser,
		IsBanned: false,
	}
	bannedUser := &userModels.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "mallory",
		Role:     userModels.RoleUser,
		IsBanned: true,
	}

	t.Run("Bans an active user", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "bob").Return(activeUser, nil)
		m.userRepo.On("SetBanned", ctx, activeUser.ID, true).Return(nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.Action == modModels.ActionBanUser &&
				entry.TargetID != nil && *entry.TargetID == activeUser.ID
		})).Return(nil)

		err := service.BanUser(ctx, moderatorID, "bob")

		assert.NoError(t, err)
		m.userRepo.AssertExpectations(t)
		m.auditRepo.AssertExpectations(t)
	})

	t.Run("Banning an already banned user is a conflict", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "mallory").Return(bannedUser, nil)

		err := service.BanUser(ctx, moderatorID, "mallory")

		assert.ErrorIs(t, err, modErrors.ErrAlreadyBanned)
		m.userRepo.AssertNotCalled(t, "SetBanned")
		m.auditRepo.AssertNotCalled(t, "Append")
	})

	t.Run("Unbans a banned user", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "mallory").Return(bannedUser, nil)
		m.userRepo.On("SetBanned", ctx, bannedUser.ID, false).Return(nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.Action == modModels.ActionUnbanUser
		})).Return(nil)

		err := service.UnbanUser(ctx, moderatorID, "mallory")

		assert.NoError(t, err)
		m.userRepo.AssertExpectations(t)
	})

	t.Run("Unbanning an active user is a conflict", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "bob").Return(activeUser, nil)

		err := service.UnbanUser(ctx, moderatorID, "bob")

		assert.ErrorIs(t, err, modErrors.ErrNotBanned)
		m.userRepo.AssertNotCalled(t, "SetBanned")
	})

	t.Run("Missing user", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, notFoundErr("user"))

		err := service.BanUser(ctx, moderatorID, "ghost")

		assert.ErrorIs(t, err, modErrors.ErrUserNotFound)
		m.auditRepo.AssertNotCalled(t, "Append")
	})
}

func TestModerationService_DeleteUserContent(t *testing.T) {
	ctx := context.Background()
	moderatorID := uuid.Must(uuid.NewV4())

	user := &userModels.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "carol",
		Role:     userModels.RoleUser,
	}

	t.Run("Purges posts and comments, reports counts", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "carol").Return(user, nil)
		m.postRepo.On("DeleteByAuthor", ctx, user.ID).Return(int64(3), nil)
		m.commentRepo.On("DeleteByAuthor", ctx, user.ID).Return(int64(7), nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.Action == modModels.ActionDeleteUserContent
		})).Return(nil)

		deleted, err := service.DeleteUserContent(ctx, moderatorID, "carol")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), deleted.Posts)
		assert.Equal(t, int64(7), deleted.Comments)
		m.userRepo.AssertNotCalled(t, "SetBanned")
		m.auditRepo.AssertExpectations(t)
	})

	t.Run("Missing user", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, notFoundErr("user"))

		deleted, err := service.DeleteUserContent(ctx, moderatorID, "ghost")

		assert.ErrorIs(t, err, modErrors.ErrUserNotFound)
		assert.Nil(t, deleted)
		m.postRepo.AssertNotCalled(t, "DeleteByAuthor")
	})
}

func TestModerationService_ListReports(t *testing.T) {
	ctx := context.Background()

	t.Run("Joins usernames and fills snippets", func(t *testing.T) {
		service, m := newModerationService()

		itemID := uuid.Must(uuid.NewV4())
		goneID := uuid.Must(uuid.NewV4())
		rows := []*reportModels.ReportWithReporter{
			{
				Report: reportModels.Report{
					ID:       uuid.Must(uuid.NewV4()),
					ItemType: interfaces.ItemTypePost,
					ItemID:   itemID,
					Status:   reportModels.StatusPending,
				},
				ReporterUsername: "alice",
			},
			{
				Report: reportModels.Report{
					ID:       uuid.Must(uuid.NewV4()),
					ItemType: interfaces.ItemTypeComment,
					ItemID:   goneID,
					Status:   reportModels.StatusPending,
				},
				ReporterUsername: "bob",
			},
		}

		m.reportRepo.On("Find", ctx, reportRepository.ReportFilter{Status: reportModels.StatusPending}, 20, 0).Return(rows, nil)
		m.content.On("Snippet", ctx, interfaces.ItemRef{Type: interfaces.ItemTypePost, ID: itemID}).Return("Rules question", nil)
		m.content.On("Snippet", ctx, interfaces.ItemRef{Type: interfaces.ItemTypeComment, ID: goneID}).Return("", notFoundErr("comment"))

		result, err := service.ListReports(ctx, reportModels.StatusPending, "", 1, 20)

		assert.NoError(t, err)
		assert.Len(t, result.Reports, 2)
		assert.Equal(t, "Rules question", result.Reports[0].Snippet)
		assert.Empty(t, result.Reports[1].Snippet)
		assert.False(t, result.HasMore)
		m.reportRepo.AssertExpectations(t)
	})

	t.Run("Unknown status filter", func(t *testing.T) {
		service, m := newModerationService()

		result, err := service.ListReports(ctx, "stale", "", 1, 20)

		assert.ErrorIs(t, err, modErrors.ErrInvalidRequest)
		assert.Nil(t, result)
		m.reportRepo.AssertNotCalled(t, "Find")
	})

	t.Run("Full page sets hasMore", func(t *testing.T) {
		service, m := newModerationService()

		rows := make([]*reportModels.ReportWithReporter, 2)
		for i := range rows {
			rows[i] = &reportModels.ReportWithReporter{
				Report: reportModels.Report{
					ID:       uuid.Must(uuid.NewV4()),
					ItemType: interfaces.ItemTypePost,
					ItemID:   uuid.Must(uuid.NewV4()),
				},
			}
		}

		m.reportRepo.On("Find", ctx, reportRepository.ReportFilter{}, 2, 2).Return(rows, nil)
		m.content.On("Snippet", ctx, mock.Anything).Return("", nil)

		result, err := service.ListReports(ctx, "", "", 2, 2)

		assert.NoError(t, err)
		assert.True(t, result.HasMore)
		assert.Equal(t, 2, result.Page)
	})
}

func TestModerationService_GetStats(t *testing.T) {
	ctx := context.Background()

	service, m := newModerationService()

	m.postRepo.On("Count", ctx, mock.Anything).Return(int64(120), nil)
	m.commentRepo.On("Count", ctx, mock.Anything).Return(int64(560), nil)
	m.userRepo.On("Count", ctx, mock.Anything).Return(int64(42), nil)
	m.userRepo.On("CountBanned", ctx).Return(int64(3), nil)
	m.reportRepo.On("CountPendingByItemType", ctx).Return(map[interfaces.ItemType]int64{
		interfaces.ItemTypePost:    5,
		interfaces.ItemTypeComment: 2,
	}, nil)

	stats, err := service.GetStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), stats.TotalPosts)
	assert.Equal(t, int64(560), stats.TotalComments)
	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.BannedUsers)
	assert.Equal(t, int64(5), stats.PendingPostReports)
	assert.Equal(t, int64(2), stats.PendingCommentReports)
}

func TestModerationService_GetUserProfile(t *testing.T) {
	ctx := context.Background()

	user := &userModels.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "dave",
		Role:     userModels.RoleModerator,
	}

	t.Run("Returns user with content counts", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "dave").Return(user, nil)
		m.postRepo.On("CountByAuthor", ctx, user.ID).Return(int64(9), nil)
		m.commentRepo.On("CountByAuthor", ctx, user.ID).Return(int64(31), nil)

		profile, err := service.GetUserProfile(ctx, "dave")

		assert.NoError(t, err)
		assert.Equal(t, user, profile.User)
		assert.Equal(t, int64(9), profile.PostCount)
		assert.Equal(t, int64(31), profile.CommentCount)
	})

	t.Run("Missing user", func(t *testing.T) {
		service, m := newModerationService()

		m.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, notFoundErr("user"))

		profile, err := service.GetUserProfile(ctx, "ghost")

		assert.ErrorIs(t, err, modErrors.ErrUserNotFound)
		assert.Nil(t, profile)
	})
}

func TestModerationService_DeleteComment(t *testing.T) {
	ctx := context.Background()
	moderatorID := uuid.Must(uuid.NewV4())
	commentID := uuid.Must(uuid.NewV4())

	comment := &commentModels.Comment{
		ID:             commentID,
		PostID:         uuid.Must(uuid.NewV4()),
		AuthorID:       uuid.Must(uuid.NewV4()),
		AuthorUsername: "eve",
		Body:           "something deletable",
	}

	t.Run("Deletes comment and audits", func(t *testing.T) {
		service, m := newModerationService()

		m.commentRepo.On("FindByID", ctx, commentID).Return(comment, nil)
		m.commentRepo.On("Delete", ctx, commentID).Return(nil)
		m.auditRepo.On("Append", ctx, mock.MatchedBy(func(entry *modModels.ModerationLogEntry) bool {
			return entry.Action == modModels.ActionDeleteComment
		})).Return(nil)

		err := service.DeleteComment(ctx, moderatorID, commentID)

		assert.NoError(t, err)
		m.commentRepo.AssertExpectations(t)
		m.auditRepo.AssertExpectations(t)
	})

	t.Run("Missing comment", func(t *testing.T) {
		service, m := newModerationService()

		m.commentRepo.On("FindByID", ctx, commentID).Return(nil, notFoundErr("comment"))

		err := service.DeleteComment(ctx, moderatorID, commentID)

		assert.ErrorIs(t, err, modErrors.ErrCommentNotFound)
		m.commentRepo.AssertNotCalled(t, "Delete")
	})
}
