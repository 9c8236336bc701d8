// Package ratelimit provides rate limiting middleware for the write-heavy
// vote and report endpoints.
package ratelimit

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/forumkit/forum-api/internal/pkg/log"
	"github.com/forumkit/forum-api/internal/platform/config"
	"github.com/forumkit/forum-api/internal/types"
)

// New creates a rate limiting middleware from the given config. Requests are
// keyed by authenticated principal when one is present, falling back to the
// client IP, always scoped to the route path. A disabled config yields a
// pass-through handler.
func New(cfg config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Duration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userCtx, ok := c.Locals(types.UserCtxName).(types.UserContext); ok {
				return userCtx.UserID.String() + ":" + c.Path()
			}
			return c.IP() + ":" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn("[RateLimit] limit exceeded for %s from IP %s", c.Path(), c.IP())

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    "Too many requests. Please try again later.",
				"retryAfter": int(cfg.Duration.Seconds()),
			})
		},
	})
}
