package authrole

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/internal/types"
	"github.com/forumkit/forum-api/reports"
	reportHandlers "github.com/forumkit/forum-api/reports/handlers"
	"github.com/forumkit/forum-api/shared/interfaces"
	"github.com/forumkit/forum-api/users/models"
	userRepository "github.com/forumkit/forum-api/users/repository"
	"github.com/forumkit/forum-api/votes"
	voteHandlers "github.com/forumkit/forum-api/votes/handlers"
	voteModels "github.com/forumkit/forum-api/votes/models"
	voteServices "github.com/forumkit/forum-api/votes/services"
)

// stubUserRepository serves user rows from a map, standing in for the store.
// A non-nil failWith makes every lookup fail with that error.
type stubUserRepository struct {
	users    map[uuid.UUID]*models.User
	failWith error
}

var _ userRepository.UserRepository = (*stubUserRepository)(nil)

func (s *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user not found: %w", sql.ErrNoRows)
}

func (s *stubUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", sql.ErrNoRows)
}

func (s *stubUserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}
	user.IsBanned = banned
	return nil
}

func (s *stubUserRepository) Find(ctx context.Context, filter userRepository.UserFilter, limit, offset int) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepository) Count(ctx context.Context, filter userRepository.UserFilter) (int64, error) {
	return 0, nil
}

func (s *stubUserRepository) CountBanned(ctx context.Context) (int64, error) {
	return 0, nil
}

func withPrincipal(userCtx types.UserContext) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(types.UserCtxName, userCtx)
		return c.Next()
	}
}

func TestRequireModerator_UnauthorizedWithoutUser(t *testing.T) {
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{}}
	app := fiber.New()
	app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireModerator_ForbiddenForPlainUser(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "bob", Role: models.RoleUser},
	}}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleUser}))
	app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestRequireModerator_AllowsModeratorAndAdmin(t *testing.T) {
	for _, role := range []string{models.RoleModerator, models.RoleAdmin} {
		userID := uuid.Must(uuid.NewV4())
		repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
			userID: {ID: userID, Username: "mod", Role: role},
		}}

		app := fiber.New()
		app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: role}))
		app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

		resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("role %s: expected 200, got %d", role, resp.StatusCode)
		}
	}
}

// A token minted while the caller was an admin must not open the gate once
// the store says otherwise.
func TestRequireModerator_StaleTokenRoleIsIgnored(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "demoted", Role: models.RoleUser},
	}}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleAdmin}))
	app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for demoted user, got %d", resp.StatusCode)
	}
}

func TestRequireModerator_RefreshesPrincipalRole(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "promoted", Role: models.RoleModerator},
	}}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleUser}))
	app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error {
		userCtx := c.Locals(types.UserCtxName).(types.UserContext)
		if userCtx.SystemRole != models.RoleModerator {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendStatus(http.StatusOK)
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected refreshed moderator role, got %d", resp.StatusCode)
	}
}

func TestRequireModerator_UnknownUser(t *testing.T) {
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{}}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: uuid.Must(uuid.NewV4()), SystemRole: models.RoleAdmin}))
	app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown user, got %d", resp.StatusCode)
	}
}

func TestRequireNotBanned_BlocksBannedUser(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "mallory", Role: models.RoleUser, IsBanned: true},
	}}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleUser}))
	app.Post("/", NewRequireNotBanned(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	resp, _ := app.Test(httptest.NewRequest("POST", "/", nil))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for banned user, got %d", resp.StatusCode)
	}
}

// A broken store is not an authorization verdict. Only a missing row means
// Forbidden; any other lookup failure surfaces as an internal error.
func TestRequireModerator_StoreFailureIsInternal(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{failWith: fmt.Errorf("connection refused")}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleModerator}))
	app.Get("/", NewRequireModerator(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	resp, _ := app.Test(httptest.NewRequest("GET", "/", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store failure, got %d", resp.StatusCode)
	}
}

func TestRequireNotBanned_StoreFailureIsInternal(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{failWith: fmt.Errorf("connection refused")}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleUser}))
	app.Post("/", NewRequireNotBanned(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	resp, _ := app.Test(httptest.NewRequest("POST", "/", nil))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store failure, got %d", resp.StatusCode)
	}
}

func TestRequireNotBanned_AllowsActiveUser(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "alice", Role: models.RoleUser},
	}}

	app := fiber.New()
	app.Use(withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleUser}))
	app.Post("/", NewRequireNotBanned(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	resp, _ := app.Test(httptest.NewRequest("POST", "/", nil))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

type stubVoteService struct{}

var _ voteServices.VoteService = stubVoteService{}

func (stubVoteService) CastVote(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef, voteType voteModels.VoteType) (*voteServices.VoteResult, error) {
	vt := voteType
	return &voteServices.VoteResult{Votes: 1, UserVote: &vt, Action: voteModels.ActionCreated}, nil
}

func (stubVoteService) VoteStatus(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]voteModels.VoteType, error) {
	return map[interfaces.ItemRef]voteModels.VoteType{}, nil
}

type stubReportService struct{}

func (stubReportService) SubmitReport(ctx context.Context, reporterID uuid.UUID, ref interfaces.ItemRef, reason string) error {
	return nil
}

// A ban gates content creation only. The vote and report routes mount
// without the ban gate, so a banned caller can still vote and report while
// a gated creation route rejects them.
func TestBannedUserCanStillVoteAndReport(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	repo := &stubUserRepository{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Username: "mallory", Role: models.RoleUser, IsBanned: true},
	}}

	auth := withPrincipal(types.UserContext{UserID: userID, SystemRole: models.RoleUser})
	passLimiter := func(c *fiber.Ctx) error { return c.Next() }

	app := fiber.New()
	votes.SetupRoutes(app, voteHandlers.NewVoteHandler(stubVoteService{}), auth, passLimiter)
	reports.SetupRoutes(app, reportHandlers.NewReportHandler(stubReportService{}), auth, passLimiter)
	app.Post("/posts", auth, NewRequireNotBanned(Config{Users: repo}), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusCreated) })

	itemID := uuid.Must(uuid.NewV4())

	voteBody, _ := json.Marshal(map[string]string{"itemType": "post", "itemId": itemID.String(), "voteType": "up"})
	req := httptest.NewRequest("POST", "/votes", bytes.NewReader(voteBody))
	req.Header.Set(types.HeaderContentType, "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("banned user should still vote, got %d", resp.StatusCode)
	}

	reportBody, _ := json.Marshal(map[string]string{"itemType": "post", "itemId": itemID.String(), "reason": "spam"})
	req = httptest.NewRequest("POST", "/reports", bytes.NewReader(reportBody))
	req.Header.Set(types.HeaderContentType, "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("banned user should still report, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/posts", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("banned user should not create content, got %d", resp.StatusCode)
	}
}
