// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	commentRepository "github.com/forumkit/forum-api/comments/repository"
	"github.com/forumkit/forum-api/internal/types"
	"github.com/forumkit/forum-api/moderation/errors"
	auditRepository "github.com/forumkit/forum-api/moderation/repository"
	"github.com/forumkit/forum-api/moderation/services"
	postRepository "github.com/forumkit/forum-api/posts/repository"
	reportModels "github.com/forumkit/forum-api/reports/models"
	"github.com/forumkit/forum-api/shared/interfaces"
	userRepository "github.com/forumkit/forum-api/users/repository"
)

// ModerationHandler handles all moderation HTTP requests
type ModerationHandler struct {
	moderationService services.ModerationService
}

// NewModerationHandler creates a new ModerationHandler with injected dependencies
func NewModerationHandler(moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// BulkDeleteRequest represents the request body for bulk deletions
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *ModerationHandler) moderator(c *fiber.Ctx) (types.UserContext, bool) {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	return user, ok
}

// ListReports handles the moderation report queue
// Endpoint: GET /moderation/reports?status=pending&itemType=post&page=1&limit=20
func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	status := reportModels.ReportStatus(c.Query("status"))
	itemType := interfaces.ItemType(c.Query("itemType"))

	result, err := h.moderationService.ListReports(c.Context(), status, itemType, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// DismissReport handles report dismissal
// Endpoint: POST /moderation/reports/:reportId/dismiss
func (h *ModerationHandler) DismissReport(c *fiber.Ctx) error {
	reportID, err := uuid.FromString(c.Params("reportId"))
	if err != nil {
		return errors.HandleUUIDError(c, "reportId")
	}

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	if err := h.moderationService.DismissReport(c.Context(), user.UserID, reportID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{})
}

// DeletePost handles single post deletion
// Endpoint: DELETE /moderation/posts/:postId
func (h *ModerationHandler) DeletePost(c *fiber.Ctx) error {
	postID, err := uuid.FromString(c.Params("postId"))
	if err != nil {
		return errors.HandleUUIDError(c, "postId")
	}

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	if err := h.moderationService.DeletePost(c.Context(), user.UserID, postID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Post deleted"})
}

// DeleteComment handles single comment deletion
// Endpoint: DELETE /moderation/comments/:commentId
func (h *ModerationHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := uuid.FromString(c.Params("commentId"))
	if err != nil {
		return errors.HandleUUIDError(c, "commentId")
	}

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	if err := h.moderationService.DeleteComment(c.Context(), user.UserID, commentID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "Comment deleted"})
}

func parseIDList(raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.FromString(s)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// BulkDeletePosts handles batch post deletion
// Endpoint: POST /moderation/posts/bulk-delete
// Body: {"ids": ["uuid", ...]}
func (h *ModerationHandler) BulkDeletePosts(c *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	ids, ok := parseIDList(req.IDs)
	if !ok {
		return errors.HandleUUIDError(c, "ids")
	}

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	deleted, err := h.moderationService.BulkDeletePosts(c.Context(), user.UserID, ids)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"deleted": deleted})
}

// BulkDeleteComments handles batch comment deletion
// Endpoint: POST /moderation/comments/bulk-delete
func (h *ModerationHandler) BulkDeleteComments(c *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	ids, ok := parseIDList(req.IDs)
	if !ok {
		return errors.HandleUUIDError(c, "ids")
	}

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	deleted, err := h.moderationService.BulkDeleteComments(c.Context(), user.UserID, ids)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"deleted": deleted})
}

// BanUser handles banning a user by username
// Endpoint: POST /moderation/users/:username/ban
func (h *ModerationHandler) BanUser(c *fiber.Ctx) error {
	username := c.Params("username")

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	if err := h.moderationService.BanUser(c.Context(), user.UserID, username); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "User banned"})
}

// UnbanUser handles unbanning a user by username
// Endpoint: POST /moderation/users/:username/unban
func (h *ModerationHandler) UnbanUser(c *fiber.Ctx) error {
	username := c.Params("username")

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	if err := h.moderationService.UnbanUser(c.Context(), user.UserID, username); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "User unbanned"})
}

// DeleteUserContent handles purging all content authored by a user
// Endpoint: DELETE /moderation/users/:username/content
func (h *ModerationHandler) DeleteUserContent(c *fiber.Ctx) error {
	username := c.Params("username")

	user, ok := h.moderator(c)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	deleted, err := h.moderationService.DeleteUserContent(c.Context(), user.UserID, username)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(deleted)
}

// ListPosts handles post browsing with filters
// Endpoint: GET /moderation/posts?search=&author=&sortBy=&sortOrder=&page=&limit=
func (h *ModerationHandler) ListPosts(c *fiber.Ctx) error {
	filter := postRepository.PostFilter{
		AuthorName: c.Query("author"),
		SearchText: c.Query("search"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}

	result, err := h.moderationService.ListPosts(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// ListComments handles comment browsing with filters
// Endpoint: GET /moderation/comments?postId=&search=&author=&page=&limit=
func (h *ModerationHandler) ListComments(c *fiber.Ctx) error {
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

	result, err := h.moderationService.ListComments(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// ListUsers handles user browsing with filters
// Endpoint: GET /moderation/users?search=&banned=&role=&page=&limit=
func (h *ModerationHandler) ListUsers(c *fiber.Ctx) error {
	filter := userRepository.UserFilter{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if raw := c.Query("banned"); raw != "" {
		banned, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.HandleValidationError(c, "banned must be true or false")
		}
		filter.Banned = &banned
	}
	if role := c.Query("role"); role != "" {
		filter.Role = &role
	}

	result, err := h.moderationService.ListUsers(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// GetUserProfile handles a single user lookup with content counts
// Endpoint: GET /moderation/users/:username
func (h *ModerationHandler) GetUserProfile(c *fiber.Ctx) error {
	profile, err := h.moderationService.GetUserProfile(c.Context(), c.Params("username"))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(profile)
}

// ListAuditLog handles moderation log browsing
// Endpoint: GET /moderation/logs?moderatorId=&action=&page=&limit=
func (h *ModerationHandler) ListAuditLog(c *fiber.Ctx) error {
	filter := auditRepository.AuditFilter{
		Action: c.Query("action"),
	}

	if raw := c.Query("moderatorId"); raw != "" {
		moderatorID, err := uuid.FromString(raw)
		if err != nil {
			return errors.HandleUUIDError(c, "moderatorId")
		}
		filter.ModeratorID = &moderatorID
	}

	result, err := h.moderationService.ListAuditLog(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// GetStats handles the moderation dashboard snapshot
// Endpoint: GET /moderation/stats
func (h *ModerationHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.moderationService.GetStats(c.Context())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(stats)
}
