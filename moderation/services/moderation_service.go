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

	commentModels "github.com/forumkit/forum-api/comments/models"
	commentRepository "github.com/forumkit/forum-api/comments/repository"
	"github.com/forumkit/forum-api/internal/pkg/log"
	modErrors "github.com/forumkit/forum-api/moderation/errors"
	modModels "github.com/forumkit/forum-api/moderation/models"
	auditRepository "github.com/forumkit/forum-api/moderation/repository"
	postModels "github.com/forumkit/forum-api/posts/models"
	postRepository "github.com/forumkit/forum-api/posts/repository"
	reportModels "github.com/forumkit/forum-api/reports/models"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	"github.com/forumkit/forum-api/shared/adapters"
	"github.com/forumkit/forum-api/shared/interfaces"
	userModels "github.com/forumkit/forum-api/users/models"
	userRepository "github.com/forumkit/forum-api/users/repository"
)

// Pagination bounds shared by every moderation listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// auditDetailMaxLen bounds the free-text details column of an audit entry.
const auditDetailMaxLen = 200

// ReportList is one page of reports for the moderation queue.
type ReportList struct {
	Reports []*reportModels.ReportWithReporter `json:"reports"`
	Page    int                                `json:"page"`
	Limit   int                                `json:"limit"`
	HasMore bool                               `json:"hasMore"`
}

// PostList is one page of posts.
type PostList struct {
	Posts   []*postModels.Post `json:"posts"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	HasMore bool               `json:"hasMore"`
}

// CommentList is one page of comments.
type CommentList struct {
	Comments []*commentModels.Comment `json:"comments"`
	Page     int                      `json:"page"`
	Limit    int                      `json:"limit"`
	HasMore  bool                     `json:"hasMore"`
}

// UserList is one page of users.
type UserList struct {
	Users   []*userModels.User `json:"users"`
	Page    int                `json:"page"`
	Limit   int                `json:"limit"`
	HasMore bool               `json:"hasMore"`
}

// AuditList is one page of moderation log entries.
type AuditList struct {
	Entries []*modModels.ModerationLogWithModerator `json:"entries"`
	Page    int                                     `json:"page"`
	Limit   int                                     `json:"limit"`
	HasMore bool                                    `json:"hasMore"`
}

// DeletedContent reports how many rows a user-content purge removed.
type DeletedContent struct {
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
}

// UserProfile is a user row with authored-content counts for the moderation UI.
type UserProfile struct {
	User         *userModels.User `json:"user"`
	PostCount    int64            `json:"postCount"`
	CommentCount int64            `json:"commentCount"`
}

// Stats is a point-in-time snapshot of moderation-relevant totals.
type Stats struct {
	TotalPosts            int64 `json:"totalPosts"`
	TotalComments         int64 `json:"totalComments"`
	TotalUsers            int64 `json:"totalUsers"`
	BannedUsers           int64 `json:"bannedUsers"`
	PendingPostReports    int64 `json:"pendingPostReports"`
	PendingCommentReports int64 `json:"pendingCommentReports"`
}

// ModerationService defines the privileged operations available to
// moderators and admins. Every mutating operation appends an audit entry
// after it succeeds; the audit write is best-effort and never fails or
// rolls back the action itself.
type ModerationService interface {
	ListReports(ctx context.Context, status reportModels.ReportStatus, itemType interfaces.ItemType, page, limit int) (*ReportList, error)
	DismissReport(ctx context.Context, moderatorID, reportID uuid.UUID) error

	DeletePost(ctx context.Context, moderatorID, postID uuid.UUID) error
	DeleteComment(ctx context.Context, moderatorID, commentID uuid.UUID) error
	BulkDeletePosts(ctx context.Context, moderatorID uuid.UUID, ids []uuid.UUID) (int64, error)
	BulkDeleteComments(ctx context.Context, moderatorID uuid.UUID, ids []uuid.UUID) (int64, error)

	BanUser(ctx context.Context, moderatorID uuid.UUID, username string) error
	UnbanUser(ctx context.Context, moderatorID uuid.UUID, username string) error
	DeleteUserContent(ctx context.Context, moderatorID uuid.UUID, username string) (*DeletedContent, error)

	ListPosts(ctx context.Context, filter postRepository.PostFilter, page, limit int) (*PostList, error)
	ListComments(ctx context.Context, filter commentRepository.CommentFilter, page, limit int) (*CommentList, error)
	ListUsers(ctx context.Context, filter userRepository.UserFilter, page, limit int) (*UserList, error)
	GetUserProfile(ctx context.Context, username string) (*UserProfile, error)
	ListAuditLog(ctx context.Context, filter auditRepository.AuditFilter, page, limit int) (*AuditList, error)
	GetStats(ctx context.Context) (*Stats, error)
}

// moderationService implements the ModerationService interface
type moderationService struct {
	userRepo    userRepository.UserRepository
	postRepo    postRepository.PostRepository
	commentRepo commentRepository.CommentRepository
	reportRepo  reportRepository.ReportRepository
	auditRepo   auditRepository.AuditRepository
	content     interfaces.ContentStore
}

// NewModerationService creates a new instance of the moderation service
func NewModerationService(
	userRepo userRepository.UserRepository,
	postRepo postRepository.PostRepository,
	commentRepo commentRepository.CommentRepository,
	reportRepo reportRepository.ReportRepository,
	auditRepo auditRepository.AuditRepository,
	content interfaces.ContentStore,
) ModerationService {
	return &moderationService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reportRepo:  reportRepo,
		auditRepo:   auditRepo,
		content:     content,
	}
}

// normalizePaging clamps page and limit to the shared pagination contract
// and returns the effective limit and row offset.
func normalizePaging(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

// audit appends one log entry after a successful action. A failed write is
// reported to the operational log and otherwise ignored: the action already
// happened and its result must stand.
func (s *moderationService) audit(ctx context.Context, moderatorID uuid.UUID, action string, targetType *string, targetID *uuid.UUID, details string) {
	entryID, err := uuid.NewV4()
	if err != nil {
		log.ErrorWithContext(ctx, "failed to generate audit entry id for action %s: %v", action, err)
		return
	}

	entry := &modModels.ModerationLogEntry{
		ID:          entryID,
		ModeratorID: moderatorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Details:     adapters.Truncate(details, auditDetailMaxLen),
	}

	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.ErrorWithContext(ctx, "failed to append audit entry for action %s: %v", action, err)
	}
}

func strPtr(s string) *string { return &s }

// ListReports returns one page of the moderation queue, newest first, with
// reporter usernames and a snippet of each reported item.
func (s *moderationService) ListReports(ctx context.Context, status reportModels.ReportStatus, itemType interfaces.ItemType, page, limit int) (*ReportList, error) {
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown report status %q", modErrors.ErrInvalidRequest, status)
	}
	if itemType != "" && !itemType.IsValid() {
		return nil, fmt.Errorf("%w: unknown item type %q", modErrors.ErrInvalidRequest, itemType)
	}

	page, limit, offset := normalizePaging(page, limit)

	reports, err := s.reportRepo.Find(ctx, reportRepository.ReportFilter{Status: status, ItemType: itemType}, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	// Snippets are display sugar. A missing or deleted item leaves the
	// snippet empty rather than failing the listing.
	for _, report := range reports {
		ref := interfaces.ItemRef{Type: report.ItemType, ID: report.ItemID}
		snippet, err := s.content.Snippet(ctx, ref)
		if err != nil {
			continue
		}
		report.Snippet = snippet
	}

	return &ReportList{
		Reports: reports,
		Page:    page,
		Limit:   limit,
		HasMore: len(reports) == limit,
	}, nil
}

// DismissReport sets a report's status to dismissed. Any source status is
// accepted; dismissing an already dismissed report succeeds.
func (s *moderationService) DismissReport(ctx context.Context, moderatorID, reportID uuid.UUID) error {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrReportNotFound
		}
		return fmt.Errorf("failed to find report: %w", err)
	}

	if err := s.reportRepo.UpdateStatus(ctx, reportID, reportModels.StatusDismissed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrReportNotFound
		}
		return fmt.Errorf("failed to dismiss report: %w", err)
	}

	details := fmt.Sprintf("dismissed report on %s %s", report.ItemType, report.ItemID)
	s.audit(ctx, moderatorID, modModels.ActionDismissReport, strPtr("report"), &reportID, details)

	return nil
}

// DeletePost removes a post. The audit entry captures a truncated snapshot
// of the title so the trail stays readable after the row is gone.
func (s *moderationService) DeletePost(ctx context.Context, moderatorID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrPostNotFound
		}
		return fmt.Errorf("failed to find post: %w", err)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrPostNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	details := fmt.Sprintf("deleted post by %s: %s", post.AuthorUsername, post.Title)
	s.audit(ctx, moderatorID, modModels.ActionDeletePost, strPtr(string(interfaces.ItemTypePost)), &postID, details)

	return nil
}

// DeleteComment removes a comment, mirroring DeletePost.
func (s *moderationService) DeleteComment(ctx context.Context, moderatorID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrCommentNotFound
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	details := fmt.Sprintf("deleted comment by %s: %s", comment.AuthorUsername, comment.Body)
	s.audit(ctx, moderatorID, modModels.ActionDeleteComment, strPtr(string(interfaces.ItemTypeComment)), &commentID, details)

	return nil
}

// BulkDeletePosts deletes the subset of the given ids that actually exist.
// One audit entry summarizes the whole batch.
func (s *moderationService) BulkDeletePosts(ctx context.Context, moderatorID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, modErrors.ErrEmptyIDSet
	}

	existing, err := s.postRepo.ResolveExisting(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve posts: %w", err)
	}
	if len(existing) == 0 {
		return 0, modErrors.ErrNoItemsFound
	}

	deleted, err := s.postRepo.DeleteMany(ctx, existing)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete posts: %w", err)
	}

	details := fmt.Sprintf("deleted %d of %d requested posts", deleted, len(ids))
	s.audit(ctx, moderatorID, modModels.ActionBulkDeletePosts, strPtr(string(interfaces.ItemTypePost)), nil, details)

	return deleted, nil
}

// BulkDeleteComments mirrors BulkDeletePosts for comments.
func (s *moderationService) BulkDeleteComments(ctx context.Context, moderatorID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, modErrors.ErrEmptyIDSet
	}

	existing, err := s.commentRepo.ResolveExisting(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve comments: %w", err)
	}
	if len(existing) == 0 {
		return 0, modErrors.ErrNoItemsFound
	}

	deleted, err := s.commentRepo.DeleteMany(ctx, existing)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete comments: %w", err)
	}

	details := fmt.Sprintf("deleted %d of %d requested comments", deleted, len(ids))
	s.audit(ctx, moderatorID, modModels.ActionBulkDeleteComments, strPtr(string(interfaces.ItemTypeComment)), nil, details)

	return deleted, nil
}

// BanUser sets the ban flag on a user. Banning an already banned user is a
// conflict, not a no-op.
func (s *moderationService) BanUser(ctx context.Context, moderatorID uuid.UUID, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.IsBanned {
		return modErrors.ErrAlreadyBanned
	}

	if err := s.userRepo.SetBanned(ctx, user.ID, true); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to ban user: %w", err)
	}

	s.audit(ctx, moderatorID, modModels.ActionBanUser, strPtr("user"), &user.ID, "banned "+username)

	return nil
}

// UnbanUser clears the ban flag, with the mirror conflict contract.
func (s *moderationService) UnbanUser(ctx context.Context, moderatorID uuid.UUID, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsBanned {
		return modErrors.ErrNotBanned
	}

	if err := s.userRepo.SetBanned(ctx, user.ID, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modErrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to unban user: %w", err)
	}

	s.audit(ctx, moderatorID, modModels.ActionUnbanUser, strPtr("user"), &user.ID, "unbanned "+username)

	return nil
}

// DeleteUserContent purges every post and comment authored by the user.
// The account itself, and its ban/role state, are untouched.
func (s *moderationService) DeleteUserContent(ctx context.Context, moderatorID uuid.UUID, username string) (*DeletedContent, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, modErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	deletedPosts, err := s.postRepo.DeleteByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user posts: %w", err)
	}

	deletedComments, err := s.commentRepo.DeleteByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user comments: %w", err)
	}

	details := fmt.Sprintf("deleted %d posts and %d comments by %s", deletedPosts, deletedComments, username)
	s.audit(ctx, moderatorID, modModels.ActionDeleteUserContent, strPtr("user"), &user.ID, details)

	return &DeletedContent{Posts: deletedPosts, Comments: deletedComments}, nil
}

// ListPosts returns one page of posts. Browsing is not audited.
func (s *moderationService) ListPosts(ctx context.Context, filter postRepository.PostFilter, page, limit int) (*PostList, error) {
	page, limit, offset := normalizePaging(page, limit)

	posts, err := s.postRepo.Find(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &PostList{
		Posts:   posts,
		Page:    page,
		Limit:   limit,
		HasMore: len(posts) == limit,
	}, nil
}

// ListComments returns one page of comments.
func (s *moderationService) ListComments(ctx context.Context, filter commentRepository.CommentFilter, page, limit int) (*CommentList, error) {
	page, limit, offset := normalizePaging(page, limit)

	comments, err := s.commentRepo.Find(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &CommentList{
		Comments: comments,
		Page:     page,
		Limit:    limit,
		HasMore:  len(comments) == limit,
	}, nil
}

// ListUsers returns one page of users.
func (s *moderationService) ListUsers(ctx context.Context, filter userRepository.UserFilter, page, limit int) (*UserList, error) {
	page, limit, offset := normalizePaging(page, limit)

	users, err := s.userRepo.Find(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserList{
		Users:   users,
		Page:    page,
		Limit:   limit,
		HasMore: len(users) == limit,
	}, nil
}

// GetUserProfile returns a user row with authored-content counts.
func (s *moderationService) GetUserProfile(ctx context.Context, username string) (*UserProfile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, modErrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	postCount, err := s.postRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user posts: %w", err)
	}

	commentCount, err := s.commentRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user comments: %w", err)
	}

	return &UserProfile{
		User:         user,
		PostCount:    postCount,
		CommentCount: commentCount,
	}, nil
}

// ListAuditLog returns one page of moderation log entries.
func (s *moderationService) ListAuditLog(ctx context.Context, filter auditRepository.AuditFilter, page, limit int) (*AuditList, error) {
	page, limit, offset := normalizePaging(page, limit)

	entries, err := s.auditRepo.Find(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation log: %w", err)
	}

	return &AuditList{
		Entries: entries,
		Page:    page,
		Limit:   limit,
		HasMore: len(entries) == limit,
	}, nil
}

// GetStats reads current totals straight from the store. No caching: the
// snapshot reflects the state at call time.
func (s *moderationService) GetStats(ctx context.Context) (*Stats, error) {
	totalPosts, err := s.postRepo.Count(ctx, postRepository.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	totalComments, err := s.commentRepo.Count(ctx, commentRepository.CommentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	totalUsers, err := s.userRepo.Count(ctx, userRepository.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	bannedUsers, err := s.userRepo.CountBanned(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count banned users: %w", err)
	}

	pending, err := s.reportRepo.CountPendingByItemType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}

	return &Stats{
		TotalPosts:            totalPosts,
		TotalComments:         totalComments,
		TotalUsers:            totalUsers,
		BannedUsers:           bannedUsers,
		PendingPostReports:    pending[interfaces.ItemTypePost],
		PendingCommentReports: pending[interfaces.ItemTypeComment],
	}, nil
}
