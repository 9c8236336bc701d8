// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package moderation

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/moderation/handlers"
)

// SetupRoutes registers all moderation routes on the given router. Every
// route sits behind authentication plus the moderator role gate, which
// re-reads the caller's role and ban state on each request.
func SetupRoutes(router fiber.Router, moderationHandler *handlers.ModerationHandler, authMiddleware fiber.Handler, requireModerator fiber.Handler) {
	group := router.Group("/moderation", authMiddleware, requireModerator)

	group.Get("/reports", moderationHandler.ListReports)
	group.Post("/reports/:reportId/dismiss", moderationHandler.DismissReport)

	group.Get("/posts", moderationHandler.ListPosts)
	group.Delete("/posts/:postId", moderationHandler.DeletePost)
	group.Post("/posts/bulk-delete", moderationHandler.BulkDeletePosts)

	group.Get("/comments", moderationHandler.ListComments)
	group.Delete("/comments/:commentId", moderationHandler.DeleteComment)
	group.Post("/comments/bulk-delete", moderationHandler.BulkDeleteComments)

	group.Get("/users", moderationHandler.ListUsers)
	group.Get("/users/:username", moderationHandler.GetUserProfile)
	group.Post("/users/:username/ban", moderationHandler.BanUser)
	group.Post("/users/:username/unban", moderationHandler.UnbanUser)
	group.Delete("/users/:username/content", moderationHandler.DeleteUserContent)

	group.Get("/logs", moderationHandler.ListAuditLog)
	group.Get("/stats", moderationHandler.GetStats)
}
