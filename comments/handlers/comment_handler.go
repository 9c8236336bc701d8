// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/comments/errors"
	commentRepository "github.com/forumkit/forum-api/comments/repository"
	"github.com/forumkit/forum-api/comments/services"
	"github.com/forumkit/forum-api/internal/types"
)

// CommentHandler handles all comment-related HTTP requests
type CommentHandler struct {
	commentService services.CommentService
}

// NewCommentHandler creates a new CommentHandler with injected dependencies
func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents the request body for creating a comment
type CreateCommentRequest struct {
	PostID string `json:"postId"`
	Body   string `json:"body"`
}

// CreateComment handles comment creation
// Endpoint: POST /comments
func (h *CommentHandler) CreateComment(c *fiber.Ctx) error {
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if req.PostID == "" {
		return errors.HandleValidationError(c, "postId is required")
	}
	postID, err := uuid.FromString(req.PostID)
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	comment, err := h.commentService.CreateComment(c.Context(), user, postID, req.Body)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(comment)
}

// GetComment handles a single comment lookup
// Endpoint: GET /comments/:commentId
func (h *CommentHandler) GetComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	comment, err := h.commentService.GetComment(c.Context(), commentID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(comment)
}

// ListComments handles the public comment listing
// Endpoint: GET /comments?postId=&author=&search=&page=&limit=
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	filter := commentRepository.CommentFilter{
		AuthorName: c.Query("author"),
		SearchText: c.Query("search"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	if raw := c.Query("postId"); raw != "" {
		postID, err := uuid.FromString(raw)
		if err != nil {
			return errors.HandleUUIDError(c, "postId")
		}
		filter.PostID = &postID
	}

	result, err := h.commentService.ListComments(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}
