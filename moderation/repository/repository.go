// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/moderation/models"
)

// AuditFilter carries the optional criteria for audit log listings.
type AuditFilter struct {
	ModeratorID *uuid.UUID
	Action      string
}

// AuditRepository defines the interface for the append-only moderation log.
// There is no update or delete: entries are written once and only read back.
type AuditRepository interface {
	// Append inserts one audit entry.
	Append(ctx context.Context, entry *models.ModerationLogEntry) error

	// Find retrieves audit entries matching the filter with the moderator's
	// username joined in, newest first.
	Find(ctx context.Context, filter AuditFilter, limit, offset int) ([]*models.ModerationLogWithModerator, error)

	// Count returns the number of audit entries matching the filter.
	Count(ctx context.Context, filter AuditFilter) (int64, error)
}
