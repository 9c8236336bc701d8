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

	"github.com/forumkit/forum-api/internal/database/postgres"
	"github.com/forumkit/forum-api/posts/models"
)

// postgresPostRepository implements PostRepository using raw SQL queries
type postgresPostRepository struct {
	client *postgres.Client
}

// NewPostgresPostRepository creates a new PostgreSQL repository for posts
func NewPostgresPostRepository(client *postgres.Client) PostRepository {
	return &postgresPostRepository{client: client}
}

// Create inserts a new post
func (r *postgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO posts (id, author_id, author_username, title, body, votes, created_at)
		VALUES (:id, :author_id, :author_username, :title, :body, :votes, :created_at)
	`

	_, err := sqlx.NamedExecContext(ctx, r.client.Executor(ctx), query, post)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("author does not exist: %w", sql.ErrNoRows)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// FindByID retrieves a post by its ID
func (r *postgresPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	query := `
		SELECT id, author_id, author_username, title, body, votes, created_at
		FROM posts
		WHERE id = $1
	`

	var post models.Post
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find post by id: %w", err)
	}

	return &post, nil
}

// Find retrieves posts matching the filter criteria with pagination
func (r *postgresPostRepository) Find(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	builder := r.filteredSelect("id, author_id, author_username, title, body, votes, created_at", filter).
		OrderBy(postOrderClause(filter.SortBy, filter.SortOrder)).
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post query: %w", err)
	}

	var posts []*models.Post
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return posts, nil
}

// Count returns the number of posts matching the filter criteria
func (r *postgresPostRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	query, args, err := r.filteredSelect("COUNT(*)", filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build post count query: %w", err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// filteredSelect assembles the shared WHERE clause for Find and Count so the
// two can never drift apart.
func (r *postgresPostRepository) filteredSelect(columns string, filter PostFilter) sq.SelectBuilder {
	builder := sq.Select(columns).From("posts").PlaceholderFormat(sq.Dollar)

	if filter.AuthorID != nil {
		builder = builder.Where(sq.Eq{"author_id": *filter.AuthorID})
	}
	if filter.AuthorName != "" {
		builder = builder.Where(sq.Eq{"author_username": filter.AuthorName})
	}
	if filter.SearchText != "" {
		pattern := "%" + filter.SearchText + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"body": pattern},
		})
	}

	return builder
}

// IncrementVotes atomically applies a relative delta to the votes counter.
// RETURNING gives back the counter the statement produced, so the caller
// never sees a stale value.
func (r *postgresPostRepository) IncrementVotes(ctx context.Context, postID uuid.UUID, delta int) (int, error) {
	query := `UPDATE posts SET votes = votes + $1 WHERE id = $2 RETURNING votes`

	var votes int
	err := sqlx.GetContext(ctx, r.client.Executor(ctx), &votes, query, delta, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("post not found: %w", err)
		}
		return 0, fmt.Errorf("failed to increment post votes: %w", err)
	}

	return votes, nil
}

// Delete hard-deletes a post
func (r *postgresPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post not found: %w", sql.ErrNoRows)
	}

	return nil
}

// ResolveExisting returns the subset of ids that reference existing posts
func (r *postgresPostRepository) ResolveExisting(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM posts WHERE id = ANY($1::uuid[])`

	var existing []uuid.UUID
	if err := sqlx.SelectContext(ctx, r.client.Executor(ctx), &existing, query, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("failed to resolve existing posts: %w", err)
	}

	return existing, nil
}

// DeleteMany hard-deletes the given posts and returns the deleted count
func (r *postgresPostRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM posts WHERE id = ANY($1::uuid[])`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// DeleteByAuthor hard-deletes every post authored by the user
func (r *postgresPostRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `DELETE FROM posts WHERE author_id = $1`

	result, err := r.client.Executor(ctx).ExecContext(ctx, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts by author: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

// CountByAuthor returns the number of posts authored by the user
func (r *postgresPostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM posts WHERE author_id = $1`

	var count int64
	if err := sqlx.GetContext(ctx, r.client.Executor(ctx), &count, query, authorID); err != nil {
		return 0, fmt.Errorf("failed to count posts by author: %w", err)
	}

	return count, nil
}

// postOrderClause whitelists sortable columns
func postOrderClause(sortBy, sortOrder string) string {
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
