// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/internal/types"
	"github.com/forumkit/forum-api/shared/interfaces"
	voteErrors "github.com/forumkit/forum-api/votes/errors"
	"github.com/forumkit/forum-api/votes/handlers"
	"github.com/forumkit/forum-api/votes/models"
	"github.com/forumkit/forum-api/votes/services"
)

// MockVoteService implements the VoteService interface for testing
type MockVoteService struct {
	castVoteFunc   func(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*services.VoteResult, error)
	voteStatusFunc func(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error)
}

func (m *MockVoteService) CastVote(ctx context.Context, userID uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*services.VoteResult, error) {
	if m.castVoteFunc != nil {
		return m.castVoteFunc(ctx, userID, ref, voteType)
	}
	return nil, nil
}

func (m *MockVoteService) VoteStatus(ctx context.Context, userID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error) {
	if m.voteStatusFunc != nil {
		return m.voteStatusFunc(ctx, userID, refs)
	}
	return map[interfaces.ItemRef]models.VoteType{}, nil
}

// newTestApp wires the handler behind a stub auth middleware that injects
// the given user into request locals.
func newTestApp(handler *handlers.VoteHandler, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(types.UserCtxName, types.UserContext{
			UserID:   userID,
			Username: "testuser",
		})
		return c.Next()
	})
	app.Post("/votes", handler.CastVote)
	app.Post("/votes/status", handler.VoteStatus)
	return app
}

func TestVoteHandler_CastVote_Success(t *testing.T) {
	userID, _ := uuid.NewV4()
	itemID, _ := uuid.NewV4()
	up := models.VoteTypeUp

	mockService := &MockVoteService{
		castVoteFunc: func(ctx context.Context, uid uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*services.VoteResult, error) {
			if uid != userID {
				t.Errorf("Expected user %s, got %s", userID, uid)
			}
			if ref.Type != interfaces.ItemTypePost || ref.ID != itemID {
				t.Errorf("Unexpected item ref: %+v", ref)
			}
			if voteType != models.VoteTypeUp {
				t.Errorf("Expected vote type up, got %s", voteType)
			}
			return &services.VoteResult{Votes: 5, UserVote: &up, Action: models.ActionCreated}, nil
		},
	}

	app := newTestApp(handlers.NewVoteHandler(mockService), userID)

	reqBody := handlers.VoteRequest{ItemType: "post", ItemID: itemID.String(), VoteType: "up"}
	reqJSON, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/votes", bytes.NewReader(reqJSON))
	req.Header.Set(types.HeaderContentType, "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result services.VoteResult
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Votes != 5 {
		t.Errorf("Expected votes 5, got %d", result.Votes)
	}
	if result.Action != models.ActionCreated {
		t.Errorf("Expected action %s, got %s", models.ActionCreated, result.Action)
	}
	if result.UserVote == nil || *result.UserVote != models.VoteTypeUp {
		t.Errorf("Expected userVote up, got %v", result.UserVote)
	}
}

func TestVoteHandler_CastVote_InvalidItemID(t *testing.T) {
	userID, _ := uuid.NewV4()
	mockService := &MockVoteService{
		castVoteFunc: func(ctx context.Context, uid uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*services.VoteResult, error) {
			t.Error("Service should not be called for an invalid item id")
			return nil, nil
		},
	}

	app := newTestApp(handlers.NewVoteHandler(mockService), userID)

	reqBody := handlers.VoteRequest{ItemType: "post", ItemID: "not-a-uuid", VoteType: "up"}
	reqJSON, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/votes", bytes.NewReader(reqJSON))
	req.Header.Set(types.HeaderContentType, "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestVoteHandler_CastVote_ItemNotFound(t *testing.T) {
	userID, _ := uuid.NewV4()
	itemID, _ := uuid.NewV4()

	mockService := &MockVoteService{
		castVoteFunc: func(ctx context.Context, uid uuid.UUID, ref interfaces.ItemRef, voteType models.VoteType) (*services.VoteResult, error) {
			return nil, voteErrors.ErrItemNotFound
		},
	}

	app := newTestApp(handlers.NewVoteHandler(mockService), userID)

	reqBody := handlers.VoteRequest{ItemType: "post", ItemID: itemID.String(), VoteType: "up"}
	reqJSON, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/votes", bytes.NewReader(reqJSON))
	req.Header.Set(types.HeaderContentType, "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestVoteHandler_VoteStatus_DropsInvalidEntries(t *testing.T) {
	uid, _ := uuid.NewV4()
	goodID, _ := uuid.NewV4()

	mockService := &MockVoteService{
		voteStatusFunc: func(ctx context.Context, callerID uuid.UUID, refs []interfaces.ItemRef) (map[interfaces.ItemRef]models.VoteType, error) {
			if len(refs) != 1 {
				t.Errorf("Expected 1 parsed ref, got %d", len(refs))
			}
			return map[interfaces.ItemRef]models.VoteType{
				{Type: interfaces.ItemTypePost, ID: goodID}: models.VoteTypeDown,
			}, nil
		},
	}

	app := newTestApp(handlers.NewVoteHandler(mockService), uid)

	reqBody := handlers.VoteStatusRequest{Items: []handlers.ItemRefRequest{
		{ItemType: "post", ItemID: goodID.String()},
		{ItemType: "post", ItemID: "garbage"},
	}}
	reqJSON, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/votes/status", bytes.NewReader(reqJSON))
	req.Header.Set(types.HeaderContentType, "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var response struct {
		Votes map[string]string `json:"votes"`
	}
	json.NewDecoder(resp.Body).Decode(&response)
	if len(response.Votes) != 1 {
		t.Errorf("Expected 1 vote entry, got %d", len(response.Votes))
	}
	key := "post:" + goodID.String()
	if response.Votes[key] != "down" {
		t.Errorf("Expected vote 'down' for %s, got %q", key, response.Votes[key])
	}
}

func TestVoteHandler_CastVote_MissingUserContext(t *testing.T) {
	mockService := &MockVoteService{}
	handler := handlers.NewVoteHandler(mockService)

	app := fiber.New()
	app.Post("/votes", handler.CastVote)

	itemID, _ := uuid.NewV4()
	reqBody := handlers.VoteRequest{ItemType: "post", ItemID: itemID.String(), VoteType: "up"}
	reqJSON, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/votes", bytes.NewReader(reqJSON))
	req.Header.Set(types.HeaderContentType, "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}
