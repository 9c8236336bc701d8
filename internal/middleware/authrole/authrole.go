// Package authrole gates requests on role and ban state. Both gates re-read
// the user row on every request: a token outlives the role it was minted
// with, so the store is the only source of truth.
package authrole

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/internal/pkg/log"
	"github.com/forumkit/forum-api/internal/types"
	userRepository "github.com/forumkit/forum-api/users/repository"
)

// Config defines the config for the role gate middleware.
type Config struct {
	// Users is the repository the gate re-reads role/ban state from.
	Users userRepository.UserRepository
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"code":    "FORBIDDEN",
		"message": message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": "Authentication required",
	})
}

func internalError(c *fiber.Ctx, err error) error {
	log.Error("role gate failed to load user: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "INTERNAL_ERROR",
		"message": "An internal error occurred",
	})
}

// NewRequireModerator creates a middleware that admits only callers whose
// current role is moderator or admin. The role from the token is ignored;
// the row is fetched fresh and the refreshed principal replaces the one in
// request locals.
func NewRequireModerator(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userCtx, ok := c.Locals(types.UserCtxName).(types.UserContext)
		if !ok {
			return unauthorized(c)
		}

		user, err := cfg.Users.FindByID(c.Context(), userCtx.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return forbidden(c, "Moderator access required")
			}
			return internalError(c, err)
		}

		if !user.IsModerator() {
			return forbidden(c, "Moderator access required")
		}

		userCtx.Username = user.Username
		userCtx.SystemRole = user.Role
		c.Locals(types.UserCtxName, userCtx)

		return c.Next()
	}
}

// NewRequireNotBanned creates a middleware for content-creation routes that
// rejects banned users. Voting and reporting stay open to banned users; only
// creating posts and comments is blocked.
func NewRequireNotBanned(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userCtx, ok := c.Locals(types.UserCtxName).(types.UserContext)
		if !ok {
			return unauthorized(c)
		}

		user, err := cfg.Users.FindByID(c.Context(), userCtx.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return forbidden(c, "Account not available")
			}
			return internalError(c, err)
		}

		if user.IsBanned {
			return forbidden(c, "Banned users cannot create content")
		}

		return c.Next()
	}
}
