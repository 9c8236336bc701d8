// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/forumkit/forum-api/internal/database/postgres"
	"github.com/forumkit/forum-api/moderation/models"
)

// postgresAuditRepository implements AuditRepository using raw SQL queries
type postgresAuditRepository struct {
	client *postgres.Client
}

// NewPostgresAuditRepository creates a new PostgreSQL repository for the moderation log
func NewPostgresAuditRepository(client *postgres.Client) AuditRepository {
	return &postgresAuditRepository{client: client}
}

// Append inserts one audit entry
func (r *postgresAuditRepository) Append(ctx context.Context, entry *models.ModerationLogEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO moderation_logs (id, moderator_id, action, target_type, target_id, details, created_at)
		VALUES (:id, :moderator_id, :action, :target_type, :target_id, :details, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, entry)
	if err != nil {
		return fmt.Errorf("failed to append moderation log entry: %w", err)
	}

	return nil
}

// Find retrieves audit entries matching the filter with moderator usernames joined in
func (r *postgresAuditRepository) Find(ctx context.Context, filter AuditFilter, limit, offset int) ([]*models.ModerationLogWithModerator, error) {
	builder := r.filteredSelect(
		"m.id, m.moderator_id, m.action, m.target_type, m.target_id, m.details, m.created_at, u.username AS moderator_username",
		filter,
	).
		OrderBy("m.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build moderation log query: %w", err)
	}

	var entries []*models.ModerationLogWithModerator
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find moderation log entries: %w", err)
	}

	return entries, nil
}

// Count returns the number of audit entries matching the filter
func (r *postgresAuditRepository) Count(ctx context.Context, filter AuditFilter) (int64, error) {
	query, args, err := r.filteredSelect("COUNT(*)", filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build moderation log count query: %w", err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count moderation log entries: %w", err)
	}

	return count, nil
}

// filteredSelect assembles the shared WHERE clause for Find and Count so the
// two can never drift apart.
func (r *postgresAuditRepository) filteredSelect(columns string, filter AuditFilter) sq.SelectBuilder {
	builder := sq.Select(columns).
		From("moderation_logs m").
		Join("users u ON u.id = m.moderator_id").
		PlaceholderFormat(sq.Dollar)

	if filter.ModeratorID != nil {
		builder = builder.Where(sq.Eq{"m.moderator_id": *filter.ModeratorID})
	}
	if filter.Action != "" {
		builder = builder.Where(sq.Eq{"m.action": filter.Action})
	}

	return builder
}
