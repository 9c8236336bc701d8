// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"errors"

	uuid "github.com/gofrs/uuid"

	"github.com/forumkit/forum-api/reports/models"
	"github.com/forumkit/forum-api/shared/interfaces"
)

// ErrDuplicateReport is returned when the (reporter_id, item_type, item_id)
// unique constraint rejects an insert. A user reports an item at most once,
// ever, regardless of what happened to the earlier report.
var ErrDuplicateReport = errors.New("report already exists for this reporter and item")

// ReportFilter carries the optional criteria for report listings.
type ReportFilter struct {
	Status   models.ReportStatus
	ItemType interfaces.ItemType
}

// ReportRepository defines the interface for report-specific database operations
type ReportRepository interface {
	// Create inserts a new report. Returns ErrDuplicateReport when the
	// reporter has already reported this item.
	Create(ctx context.Context, report *models.Report) error

	// FindByID retrieves a report by its ID.
	// Wraps sql.ErrNoRows when no report exists.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error)

	// UpdateStatus sets a report's status unconditionally.
	// Wraps sql.ErrNoRows when no report exists.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error

	// Find retrieves reports matching the filter with the reporter's
	// username joined in, newest first.
	Find(ctx context.Context, filter ReportFilter, limit, offset int) ([]*models.ReportWithReporter, error)

	// Count returns the number of reports matching the filter.
	Count(ctx context.Context, filter ReportFilter) (int64, error)

	// CountPendingByItemType returns how many pending reports exist per item type.
	CountPendingByItemType(ctx context.Context) (map[interfaces.ItemType]int64, error)
}
