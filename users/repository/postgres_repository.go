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
	"strings"

	sq "github.com/Masterminds/squirrel"
	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/forumkit/forum-api/internal/database/postgres"
	"github.com/forumkit/forum-api/users/models"
)

// postgresUserRepository implements UserRepository using raw SQL queries
type postgresUserRepository struct {
	client *postgres.Client
}

// NewPostgresUserRepository creates a new PostgreSQL repository for users
func NewPostgresUserRepository(client *postgres.Client) UserRepository {
	return &postgresUserRepository{client: client}
}

// FindByID retrieves a user by id
func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, is_banned, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}

	return &user, nil
}

// FindByUsername retrieves a user by username
func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, is_banned, created_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	return &user, nil
}

// SetBanned updates the ban flag for a user
func (r *postgresUserRepository) SetBanned(ctx context.Context, id uuid.UUID, banned bool) error {
	query := `UPDATE users SET is_banned = $1 WHERE id = $2`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, banned, id)
	if err != nil {
		return fmt.Errorf("failed to update ban flag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}

	return nil
}

// Find retrieves users matching the filter with pagination.
// The WHERE clause is assembled with squirrel so every optional predicate
// stays parameterized.
func (r *postgresUserRepository) Find(ctx context.Context, filter UserFilter, limit, offset int) ([]*models.User, error) {
	builder := r.filteredSelect("id, username, password_hash, role, is_banned, created_at", filter).
		OrderBy(userOrderClause(filter.SortBy, filter.SortOrder)).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	var users []*models.User
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &users, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return users, nil
}

// Count returns the number of users matching the filter
func (r *postgresUserRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	query, args, err := r.filteredSelect("COUNT(*)", filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build user count query: %w", err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// filteredSelect assembles the shared WHERE clause for Find and Count so the
// two can never drift apart.
func (r *postgresUserRepository) filteredSelect(columns string, filter UserFilter) sq.SelectBuilder {
	builder := sq.Select(columns).From("users").PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		builder = builder.Where(sq.ILike{"username": "%" + filter.Search + "%"})
	}
	if filter.Banned != nil {
		builder = builder.Where(sq.Eq{"is_banned": *filter.Banned})
	}
	if filter.Role != nil {
		builder = builder.Where(sq.Eq{"role": *filter.Role})
	}

	return builder
}

// CountBanned returns the number of currently banned users
func (r *postgresUserRepository) CountBanned(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE is_banned = TRUE`

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query); err != nil {
		return 0, fmt.Errorf("failed to count banned users: %w", err)
	}

	return count, nil
}

// userOrderClause whitelists sortable columns; anything unknown falls back to
// created_at DESC.
func userOrderClause(sortBy, sortOrder string) string {
	column := "created_at"
	switch sortBy {
	case "username":
		column = "username"
	case "created_at", "":
	default:
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}
