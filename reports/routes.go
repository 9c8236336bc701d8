// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/reports/handlers"
)

// SetupRoutes registers the report submission route on the given router.
func SetupRoutes(router fiber.Router, reportHandler *handlers.ReportHandler, authMiddleware fiber.Handler, rateLimiter fiber.Handler) {
	group := router.Group("/reports", authMiddleware)

	group.Post("/", rateLimiter, reportHandler.SubmitReport)
}
