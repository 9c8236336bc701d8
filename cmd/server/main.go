package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/forumkit/forum-api/comments"
	commentHandlers "github.com/forumkit/forum-api/comments/handlers"
	commentRepository "github.com/forumkit/forum-api/comments/repository"
	commentServices "github.com/forumkit/forum-api/comments/services"
	"github.com/forumkit/forum-api/internal/database/postgres"
	"github.com/forumkit/forum-api/internal/middleware/authjwt"
	"github.com/forumkit/forum-api/internal/middleware/authrole"
	"github.com/forumkit/forum-api/internal/middleware/ratelimit"
	"github.com/forumkit/forum-api/internal/pkg/log"
	platformconfig "github.com/forumkit/forum-api/internal/platform/config"
	"github.com/forumkit/forum-api/internal/types"
	"github.com/forumkit/forum-api/moderation"
	moderationHandlers "github.com/forumkit/forum-api/moderation/handlers"
	auditRepository "github.com/forumkit/forum-api/moderation/repository"
	moderationServices "github.com/forumkit/forum-api/moderation/services"
	"github.com/forumkit/forum-api/posts"
	postHandlers "github.com/forumkit/forum-api/posts/handlers"
	postRepository "github.com/forumkit/forum-api/posts/repository"
	postServices "github.com/forumkit/forum-api/posts/services"
	"github.com/forumkit/forum-api/reports"
	reportHandlers "github.com/forumkit/forum-api/reports/handlers"
	reportRepository "github.com/forumkit/forum-api/reports/repository"
	reportServices "github.com/forumkit/forum-api/reports/services"
	"github.com/forumkit/forum-api/shared/adapters"
	userRepository "github.com/forumkit/forum-api/users/repository"
	"github.com/forumkit/forum-api/votes"
	voteHandlers "github.com/forumkit/forum-api/votes/handlers"
	voteRepository "github.com/forumkit/forum-api/votes/repository"
	voteServices "github.com/forumkit/forum-api/votes/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to postgres: %v", err)
	}
	defer pgClient.Close()

	// Repositories
	userRepo := userRepository.NewPostgresUserRepository(pgClient)
	postRepo := postRepository.NewPostgresPostRepository(pgClient)
	commentRepo := commentRepository.NewPostgresCommentRepository(pgClient)
	voteRepo := voteRepository.NewPostgresVoteRepository(pgClient)
	reportRepo := reportRepository.NewPostgresReportRepository(pgClient)
	auditRepo := auditRepository.NewPostgresAuditRepository(pgClient)

	// The content store hides the post/comment split behind one interface
	// for the vote and report services.
	contentStore := adapters.NewDirectContentStore(pgClient, postRepo, commentRepo)

	// Services
	postService := postServices.NewPostService(postRepo)
	commentService := commentServices.NewCommentService(commentRepo)
	voteService := voteServices.NewVoteService(voteRepo, contentStore)
	reportService := reportServices.NewReportService(reportRepo, contentStore)
	moderationService := moderationServices.NewModerationService(userRepo, postRepo, commentRepo, reportRepo, auditRepo, contentStore)

	// Handlers
	postHandler := postHandlers.NewPostHandler(postService)
	commentHandler := commentHandlers.NewCommentHandler(commentService)
	voteHandler := voteHandlers.NewVoteHandler(voteService)
	reportHandler := reportHandlers.NewReportHandler(reportService)
	moderationHandler := moderationHandlers.NewModerationHandler(moderationService)

	// Middleware
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:   cfg.JWT.PublicKey,
		ClaimKey:    "claim",
		UserCtxName: types.UserCtxName,
	})
	requireModerator := authrole.NewRequireModerator(authrole.Config{Users: userRepo})
	requireNotBanned := authrole.NewRequireNotBanned(authrole.Config{Users: userRepo})
	voteLimiter := ratelimit.New(cfg.RateLimits.Vote)
	reportLimiter := ratelimit.New(cfg.RateLimits.Report)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Error("[ErrorHandler] path=%s code=%d err=%v", c.Path(), code, err)

			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": "An unexpected error occurred",
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	posts.SetupRoutes(app, postHandler, authMiddleware, requireNotBanned)
	comments.SetupRoutes(app, commentHandler, authMiddleware, requireNotBanned)
	votes.SetupRoutes(app, voteHandler, authMiddleware, voteLimiter)
	reports.SetupRoutes(app, reportHandler, authMiddleware, reportLimiter)
	moderation.SetupRoutes(app, moderationHandler, authMiddleware, requireModerator)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("forum api listening on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal("Server stopped: %v", err)
	}
}
