// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/forumkit/forum-api/internal/database/postgres"
	"github.com/forumkit/forum-api/reports/models"
	"github.com/forumkit/forum-api/shared/interfaces"
)

// postgresReportRepository implements ReportRepository using raw SQL queries
type postgresReportRepository struct {
	client *postgres.Client
}

// NewPostgresReportRepository creates a new PostgreSQL repository for reports
func NewPostgresReportRepository(client *postgres.Client) ReportRepository {
	return &postgresReportRepository{client: client}
}

// Create inserts a new report
func (r *postgresReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reports (id, reporter_id, item_type, item_id, reason, status, created_at)
		VALUES (:id, :reporter_id, :item_type, :item_id, :reason, :status, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, report)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok {
			switch pgErr.Code {
			case "23505": // unique_violation
				return ErrDuplicateReport
			case "23503": // foreign_key_violation
				return fmt.Errorf("reporter does not exist: %w", sql.ErrNoRows)
			}
		}
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

// FindByID retrieves a report by its ID
func (r *postgresReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	query := `
		SELECT id, reporter_id, item_type, item_id, reason, status, created_at
		FROM reports
		WHERE id = $1
	`

	var report models.Report
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find report by id: %w", err)
	}

	return &report, nil
}

// UpdateStatus sets a report's status unconditionally
func (r *postgresReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	query := `UPDATE reports SET status = $1 WHERE id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("report not found: %w", sql.ErrNoRows)
	}

	return nil
}

// Find retrieves reports matching the filter with reporter usernames joined in
func (r *postgresReportRepository) Find(ctx context.Context, filter ReportFilter, limit, offset int) ([]*models.ReportWithReporter, error) {
	builder := r.filteredSelect(
		"r.id, r.reporter_id, r.item_type, r.item_id, r.reason, r.status, r.created_at, u.username AS reporter_username",
		filter,
	).
		OrderBy("r.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build report query: %w", err)
	}

	var reports []*models.ReportWithReporter
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &reports, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}

	return reports, nil
}

// Count returns the number of reports matching the filter
func (r *postgresReportRepository) Count(ctx context.Context, filter ReportFilter) (int64, error) {
	query, args, err := r.filteredSelect("COUNT(*)", filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build report count query: %w", err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}

	return count, nil
}

// filteredSelect assembles the shared WHERE clause for Find and Count so the
// two can never drift apart.
func (r *postgresReportRepository) filteredSelect(columns string, filter ReportFilter) sq.SelectBuilder {
	builder := sq.Select(columns).
		From("reports r").
		Join("users u ON u.id = r.reporter_id").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"r.status": filter.Status})
	}
	if filter.ItemType != "" {
		builder = builder.Where(sq.Eq{"r.item_type": filter.ItemType})
	}

	return builder
}

// CountPendingByItemType returns how many pending reports exist per item type
func (r *postgresReportRepository) CountPendingByItemType(ctx context.Context) (map[interfaces.ItemType]int64, error) {
	query := `
		SELECT item_type, COUNT(*) AS count
		FROM reports
		WHERE status = $1
		GROUP BY item_type
	`

	rows := []struct {
		ItemType interfaces.ItemType `db:"item_type"`
		Count    int64               `db:"count"`
	}{}
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &rows, query, models.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending reports: %w", err)
	}

	counts := make(map[interfaces.ItemType]int64, len(rows))
	for _, row := range rows {
		counts[row.ItemType] = row.Count
	}

	return counts, nil
}
