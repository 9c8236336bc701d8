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
	"github.com/forumkit/forum-api/reports/errors"
	"github.com/forumkit/forum-api/reports/services"
	"github.com/forumkit/forum-api/shared/interfaces"
)

// ReportHandler handles report submission HTTP requests
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler with injected dependencies
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SubmitReportRequest represents the request body for submitting a report
type SubmitReportRequest struct {
	ItemType string `json:"itemType"` // "post" or "comment"
	ItemID   string `json:"itemId"`   // UUID as string
	Reason   string `json:"reason"`   // optional free text
}

// SubmitReport handles report creation
// Endpoint: POST /reports
// Body: {"itemType": "post", "itemId": "uuid", "reason": "spam"}
func (h *ReportHandler) SubmitReport(c *fiber.Ctx) error {
	var req SubmitReportRequest
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
	if err := h.reportService.SubmitReport(c.Context(), user.UserID, ref, req.Reason); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{})
}
