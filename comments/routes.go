// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package comments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/comments/handlers"
)

// SetupRoutes registers comment routes. Reads are public; creation requires
// an authenticated, non-banned caller.
func SetupRoutes(router fiber.Router, commentHandler *handlers.CommentHandler, authMiddleware fiber.Handler, requireNotBanned fiber.Handler) {
	group := router.Group("/comments")

	group.Get("/", commentHandler.ListComments)
	group.Get("/:commentId", commentHandler.GetComment)
	group.Post("/", authMiddleware, requireNotBanned, commentHandler.CreateComment)
}
