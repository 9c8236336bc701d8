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
	"strings"

	uuid "github.com/gofrs/uuid"

	commentErrors "github.com/forumkit/forum-api/comments/errors"
	"github.com/forumkit/forum-api/comments/models"
	commentRepository "github.com/forumkit/forum-api/comments/repository"
	"github.com/forumkit/forum-api/internal/types"
)

// Pagination bounds for the public comment listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CommentList is one page of comments.
type CommentList struct {
	Comments []*models.Comment `json:"comments"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	HasMore  bool              `json:"hasMore"`
}

// CommentService defines the interface for comment operations
type CommentService interface {
	// CreateComment inserts a comment on a post. The ban gate must have
	// admitted the caller before this runs.
	CreateComment(ctx context.Context, author types.UserContext, postID uuid.UUID, body string) (*models.Comment, error)

	// GetComment retrieves a single comment by id.
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// ListComments returns one page of comments matching the filter.
	ListComments(ctx context.Context, filter commentRepository.CommentFilter, page, limit int) (*CommentList, error)
}

// commentService implements the CommentService interface
type commentService struct {
	commentRepo commentRepository.CommentRepository
}

// NewCommentService creates a new instance of the comment service
func NewCommentService(commentRepo commentRepository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// CreateComment validates and inserts a new comment. A missing parent post
// surfaces as not found, relying on the foreign key rather than a separate
// existence check.
func (s *commentService) CreateComment(ctx context.Context, author types.UserContext, postID uuid.UUID, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", commentErrors.ErrInvalidRequest)
	}

	commentID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment id: %w", err)
	}

	comment := &models.Comment{
		ID:             commentID,
		PostID:         postID,
		AuthorID:       author.UserID,
		AuthorUsername: author.Username,
		Body:           body,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commentErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetComment retrieves a single comment by id
func (s *commentService) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commentErrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// ListComments returns one page of comments matching the filter
func (s *commentService) ListComments(ctx context.Context, filter commentRepository.CommentFilter, page, limit int) (*CommentList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	comments, err := s.commentRepo.Find(ctx, filter, limit, (page-1)*limit)
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
