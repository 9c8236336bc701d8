// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package posts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/posts/handlers"
)

// SetupRoutes registers post routes. Reads are public; creation requires an
// authenticated, non-banned caller.
func SetupRoutes(router fiber.Router, postHandler *handlers.PostHandler, authMiddleware fiber.Handler, requireNotBanned fiber.Handler) {
	group := router.Group("/posts")

	group.Get("/", postHandler.ListPosts)
	group.Get("/:postId", postHandler.GetPost)
	group.Post("/", authMiddleware, requireNotBanned, postHandler.CreatePost)
}
