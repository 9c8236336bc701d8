// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/internal/types"
	"github.com/forumkit/forum-api/shared/interfaces"
	"github.com/forumkit/forum-api/votes/errors"
	"github.com/forumkit/forum-api/votes/models"
	"github.com/forumkit/forum-api/votes/services"
)

// VoteHandler handles all vote-related HTTP requests
type VoteHandler struct {
	voteService services.VoteService
}

// NewVoteHandler creates a new VoteHandler with injected dependencies
func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// VoteRequest represents the request body for casting a vote
type VoteRequest struct {
	ItemType string `json:"itemType"` // "post" or "comment"
	ItemID   string `json:"itemId"`   // UUID as string
	VoteType string `json:"voteType"` // "up" or "down"
}

// ItemRefRequest is one entry of a vote status batch
type ItemRefRequest struct {
	ItemType string `json:"itemType"`
	ItemID   string `json:"itemId"`
}

// VoteStatusRequest represents the request body for a vote status batch
type VoteStatusRequest struct {
	Items []ItemRefRequest `json:"items"`
}

// CastVote handles vote creation/switch/removal
// Endpoint: POST /votes
// Body: {"itemType": "post", "itemId": "uuid", "voteType": "up"}
func (h *VoteHandler) CastVote(c *fiber.Ctx) error {
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	if req.ItemID == "" {
		return errors.HandleValidationError(c, "itemId is required")
	}
	itemID, err := uuid.FromString(req.ItemID)
	if err != nil {
		return errors.HandleUUIDError(c, "itemId")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	ref := interfaces.ItemRef{Type: interfaces.ItemType(req.ItemType), ID: itemID}
	result, err := h.voteService.CastVote(c.Context(), user.UserID, ref, models.VoteType(req.VoteType))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

// VoteStatus handles batch lookup of the caller's votes
// Endpoint: POST /votes/status
// Body: {"items": [{"itemType": "post", "itemId": "uuid"}, ...]}
// Invalid entries are dropped from the result rather than erroring.
func (h *VoteHandler) VoteStatus(c *fiber.Ctx) error {
	var req VoteStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "Invalid request body")
	}

	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleValidationError(c, "Invalid user context")
	}

	refs := make([]interfaces.ItemRef, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := uuid.FromString(item.ItemID)
		if err != nil {
			continue
		}
		refs = append(refs, interfaces.ItemRef{Type: interfaces.ItemType(item.ItemType), ID: itemID})
	}

	voteMap, err := h.voteService.VoteStatus(c.Context(), user.UserID, refs)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	votes := make(map[string]models.VoteType, len(voteMap))
	for ref, voteType := range voteMap {
		votes[string(ref.Type)+":"+ref.ID.String()] = voteType
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"votes": votes})
}
