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
	"time"

	sq "github.com/Masterminds/squirrel"
	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/forumkit/forum-api/comments/models"
	"github.com/forumkit/forum-api/internal/database/postgres"
)

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{client: client}
}

// Create inserts a new comment
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (id, post_id, author_id, author_username, body, votes, created_at)
		VALUES (:id, :post_id, :author_id, :author_username, :body, :votes, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, comment)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" { // foreign_key_violation
			if strings.Contains(pgErr.Detail, "post_id") {
				return fmt.Errorf("post does not exist: %w", sql.ErrNoRows)
			}
			return fmt.Errorf("author does not exist: %w", sql.ErrNoRows)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID
func (r *postgresCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, post_id, author_id, author_username, body, votes, created_at
		FROM comments
		WHERE id = $1
	`

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find comment by id: %w", err)
	}

	return &comment, nil
}

// Find retrieves comments matching the filter criteria with pagination
func (r *postgresCommentRepository) Find(ctx context.Context, filter CommentFilter, limit, offset int) ([]*models.Comment, error) {
	builder := r.filteredSelect("id, post_id, author_id, author_username, body, votes, created_at", filter).
		OrderBy(commentOrderClause(filter.SortBy, filter.SortOrder)).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment query: %w", err)
	}

	var comments []*models.Comment
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &comments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

// Count returns the number of comments matching the filter criteria
func (r *postgresCommentRepository) Count(ctx context.Context, filter CommentFilter) (int64, error) {
	query, args, err := r.filteredSelect("COUNT(*)", filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build comment count query: %w", err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}

func (r *postgresCommentRepository) filteredSelect(columns string, filter CommentFilter) sq.SelectBuilder {
	builder := sq.Select(columns).From("comments").PlaceholderFormat(sq.Dollar)

	if filter.PostID != nil {
		builder = builder.Where(sq.Eq{"post_id": *filter.PostID})
	}
	if filter.AuthorID != nil {
		builder = builder.Where(sq.Eq{"author_id": *filter.AuthorID})
	}
	if filter.AuthorName != "" {
		builder = builder.Where(sq.Eq{"author_username": filter.AuthorName})
	}
	if filter.SearchText != "" {
		builder = builder.Where(sq.ILike{"body": "%" + filter.SearchText + "%"})
	}

	return builder
}

// IncrementVotes atomically applies a relative delta to the votes counter
func (r *postgresCommentRepository) IncrementVotes(ctx context.Context, commentID uuid.UUID, delta int) (int, error) {
	query := `UPDATE comments SET votes = votes + $1 WHERE id = $2 RETURNING votes`

	var votes int
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &votes, query, delta, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("comment not found: %w", err)
		}
		return 0, fmt.Errorf("failed to increment comment votes: %w", err)
	}

	return votes, nil
}

// Delete hard-deletes a comment
func (r *postgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment not found: %w", sql.ErrNoRows)
	}

	return nil
}

// ResolveExisting returns the subset of ids that reference existing comments
func (r *postgresCommentRepository) ResolveExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM comments WHERE id = ANY($1::uuid[])`

	var existing []uuid.UUID
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &existing, query, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("failed to resolve existing comments: %w", err)
	}

	return existing, nil
}

// DeleteMany hard-deletes the given comments and returns the deleted count
func (r *postgresCommentRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM comments WHERE id = ANY($1::uuid[])`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// DeleteByAuthor hard-deletes every comment authored by the user
func (r *postgresCommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `DELETE FROM comments WHERE author_id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by author: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// CountByAuthor returns the number of comments authored by the user
func (r *postgresCommentRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM comments WHERE author_id = $1`

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, authorID); err != nil {
		return 0, fmt.Errorf("failed to count comments by author: %w", err)
	}

	return count, nil
}

// commentOrderClause whitelists sortable columns
func commentOrderClause(sortBy, sortOrder string) string {
	column := "created_at"
	if sortBy == "votes" {
		column = "votes"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}

// uuidStrings converts UUIDs into strings for pq.Array binding against
// a ::uuid[] parameter.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
