// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/internal/types"
	"github.com/forumkit/forum-api/posts/errors"
	postRepository "github.com/forumkit/forum-api/posts/repository"
	"github.com/forumkit/forum-api/posts/services"
)

// PostHandler handles all post-related HTTP requests
type PostHandler struct {
	postService services.PostService
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CreatePost handles post creation
// Endpoint: POST /posts
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	post, err := h.postService.CreatePost(c.Context(), user, req.Title, req.Body)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(post)
}

// GetPost handles a single post lookup
// Endpoint: GET /posts/:postId
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	post, err := h.postService.GetPost(c.Context(), postID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(post)
}

// ListPosts handles the public post listing
// Endpoint: GET /posts?search=&author=&sortBy=&sortOrder=&page=&limit=
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	filter := postRepository.PostFilter{
		AuthorName: c.Query("author"),
		SearchText: c.Query("search"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	result, err := h.postService.ListPosts(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}
