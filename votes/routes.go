// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package votes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/votes/handlers"
)

// SetupRoutes registers all vote-related routes on the given router.
// All routes require authentication; rate limiting applies to writes.
func SetupRoutes(router fiber.Router, voteHandler *handlers.VoteHandler, authMiddleware fiber.Handler, rateLimiter fiber.Handler) {
	group := router.Group("/votes", authMiddleware)

	group.Post("/", rateLimiter, voteHandler.CastVote)
	group.Post("/status", voteHandler.VoteStatus)
}
