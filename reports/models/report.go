// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/shared/interfaces"
)

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	StatusPending   ReportStatus = "pending"
	StatusReviewed  ReportStatus = "reviewed"
	StatusDismissed ReportStatus = "dismissed"
)

// IsValid reports whether the status is one of the known states.
func (s ReportStatus) IsValid() bool {
	return s == StatusPending || s == StatusReviewed || s == StatusDismissed
}

// Report represents a user's report of a post or comment.
// At most one report exists per (reporter_id, item_type, item_id); the
// database unique constraint enforces this even across dismissed reports.
type Report struct {
	ID         uuid.UUID           `json:"id" db:"id"`
	ReporterID uuid.UUID           `json:"reporterId" db:"reporter_id"`
	ItemType   interfaces.ItemType `json:"itemType" db:"item_type"`
	ItemID     uuid.UUID           `json:"itemId" db:"item_id"`
	Reason     string              `json:"reason" db:"reason"`
	Status     ReportStatus        `json:"status" db:"status"`
	CreatedAt  time.Time           `json:"createdAt" db:"created_at"`
}

// ReportWithReporter is a report row joined with the reporter's username,
// returned by moderation listings.
type ReportWithReporter struct {
	Report
	ReporterUsername string `json:"reporterUsername" db:"reporter_username"`

	// Snippet is a short excerpt of the reported content, filled in by the
	// service layer rather than the database. Empty when the item is gone.
	Snippet string `json:"snippet" db:"-"`
}
