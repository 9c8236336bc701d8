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

	"github.com/forumkit/forum-api/internal/types"
	postErrors "github.com/forumkit/forum-api/posts/errors"
	"github.com/forumkit/forum-api/posts/models"
	postRepository "github.com/forumkit/forum-api/posts/repository"
)

// Pagination bounds for the public post listing.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PostList is one page of posts.
type PostList struct {
	Posts   []*models.Post `json:"posts"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

// PostService defines the interface for post operations
type PostService interface {
	// CreatePost inserts a post authored by the given principal. The ban
	// gate must have admitted the caller before this runs.
	CreatePost(ctx context.Context, author types.UserContext, title, body string) (*models.Post, error)

	// GetPost retrieves a single post by id.
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// ListPosts returns one page of posts matching the filter.
	ListPosts(ctx context.Context, filter postRepository.PostFilter, page, limit int) (*PostList, error)
}

// postService implements the PostService interface
type postService struct {
	postRepo postRepository.PostRepository
}

// NewPostService creates a new instance of the post service
func NewPostService(postRepo postRepository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// CreatePost validates and inserts a new post
func (s *postService) CreatePost(ctx context.Context, author types.UserContext, title, body string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", postErrors.ErrInvalidRequest)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: body is required", postErrors.ErrInvalidRequest)
	}

	postID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate post id: %w", err)
	}

	post := &models.Post{
		ID:             postID,
		AuthorID:       author.UserID,
		AuthorUsername: author.Username,
		Title:          title,
		Body:           body,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// GetPost retrieves a single post by id
func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, postErrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// ListPosts returns one page of posts matching the filter
func (s *postService) ListPosts(ctx context.Context, filter postRepository.PostFilter, page, limit int) (*PostList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	posts, err := s.postRepo.Find(ctx, filter, limit, (page-1)*limit)
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
