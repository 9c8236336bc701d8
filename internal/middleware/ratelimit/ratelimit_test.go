package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/forumkit/forum-api/internal/platform/config"
)

func TestRateLimit_EnforcesLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/votes", New(config.RateLimitConfig{Enabled: true, Max: 2, Duration: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, _ := app.Test(httptest.NewRequest("POST", "/votes", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}

	resp, _ := app.Test(httptest.NewRequest("POST", "/votes", nil))
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", resp.StatusCode)
	}
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Post("/votes", New(config.RateLimitConfig{Enabled: false, Max: 1, Duration: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		resp, _ := app.Test(httptest.NewRequest("POST", "/votes", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.StatusCode)
		}
	}
}
