// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Vote service specific errors
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidItemType   = errors.New("invalid item type")
	ErrInvalidVoteType   = errors.New("invalid vote type")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrConcurrentVote    = errors.New("concurrent vote in progress")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeItemNotFound    = "ITEM_NOT_FOUND"
	CodeInvalidItemType = "INVALID_ITEM_TYPE"
	CodeInvalidVoteType = "INVALID_VOTE_TYPE"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidUUID     = "INVALID_UUID"
	CodeConcurrentVote  = "CONCURRENT_VOTE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ErrorResponse represents the standardized error response format
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError handles service errors and returns appropriate HTTP
// responses. Internal failures map to a generic message; store details stay
// in the server log, never in the response body.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrItemNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeItemNotFound,
			Message: "Item not found",
		})
	case errors.Is(err, ErrInvalidItemType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidItemType,
			Message: "Invalid item type",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidVoteType):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidVoteType,
			Message: "Invalid vote type",
			Details: err.Error(),
		})
	case errors.Is(err, ErrInvalidRequest):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidRequest,
			Message: "Invalid request",
			Details: err.Error(),
		})
	case errors.Is(err, ErrConcurrentVote):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeConcurrentVote,
			Message: "Vote was modified concurrently, please retry",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    CodeInternalError,
			Message: "An unexpected error occurred",
		})
	}
}

// HandleValidationError handles request validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: message,
	})
}

// HandleUUIDError handles UUID parsing errors with 400 Bad Request
func HandleUUIDError(c *fiber.Ctx, fieldName string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Code:    CodeInvalidUUID,
		Message: "Invalid " + fieldName + " format",
	})
}
