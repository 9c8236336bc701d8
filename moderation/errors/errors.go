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

// Moderation service specific errors
var (
	ErrReportNotFound  = errors.New("report not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyBanned   = errors.New("user is already banned")
	ErrNotBanned       = errors.New("user is not banned")
	ErrEmptyIDSet      = errors.New("id list must not be empty")
	ErrNoItemsFound    = errors.New("none of the requested items exist")
	ErrInvalidRequest  = errors.New("invalid request")
)

// Error codes
const (
	CodeReportNotFound  = "REPORT_NOT_FOUND"
	CodePostNotFound    = "POST_NOT_FOUND"
	CodeCommentNotFound = "COMMENT_NOT_FOUND"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeAlreadyBanned   = "ALREADY_BANNED"
	CodeNotBanned       = "NOT_BANNED"
	CodeEmptyIDSet      = "EMPTY_ID_SET"
	CodeNoItemsFound    = "NO_ITEMS_FOUND"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidUUID     = "INVALID_UUID"
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
	case errors.Is(err, ErrReportNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeReportNotFound,
			Message: "Report not found",
		})
	case errors.Is(err, ErrPostNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodePostNotFound,
			Message: "Post not found",
		})
	case errors.Is(err, ErrCommentNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeCommentNotFound,
			Message: "Comment not found",
		})
	case errors.Is(err, ErrUserNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeUserNotFound,
			Message: "User not found",
		})
	case errors.Is(err, ErrAlreadyBanned):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeAlreadyBanned,
			Message: "User is already banned",
		})
	case errors.Is(err, ErrNotBanned):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Code:    CodeNotBanned,
			Message: "User is not banned",
		})
	case errors.Is(err, ErrEmptyIDSet):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeEmptyIDSet,
			Message: "At least one id is required",
		})
	case errors.Is(err, ErrNoItemsFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Code:    CodeNoItemsFound,
			Message: "None of the requested items exist",
		})
	case errors.Is(err, ErrInvalidRequest):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Code:    CodeInvalidRequest,
			Message: "Invalid request",
			Details: err.Error(),
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
