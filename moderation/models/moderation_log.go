// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Moderation action names recorded in the audit log.
const (
	ActionDismissReport      = "dismiss_report"
	ActionDeletePost         = "delete_post"
	ActionDeleteComment      = "delete_comment"
	ActionBulkDeletePosts    = "bulk_delete_posts"
	ActionBulkDeleteComments = "bulk_delete_comments"
	ActionBanUser            = "ban_user"
	ActionUnbanUser          = "unban_user"
	ActionDeleteUserContent  = "delete_user_content"
)

// ModerationLogEntry is one immutable audit record. Entries are appended
// after the underlying action succeeds and are never updated or deleted.
type ModerationLogEntry struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ModeratorID uuid.UUID  `json:"moderatorId" db:"moderator_id"`
	Action      string     `json:"action" db:"action"`
	TargetType  *string    `json:"targetType,omitempty" db:"target_type"`
	TargetID    *uuid.UUID `json:"targetId,omitempty" db:"target_id"`
	Details     string     `json:"details" db:"details"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// ModerationLogWithModerator is a log row joined with the moderator's
// username for display in listings.
type ModerationLogWithModerator struct {
	ModerationLogEntry
	ModeratorUsername string `json:"moderatorUsername" db:"moderator_username"`
}
