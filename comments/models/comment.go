// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Comment represents a comment on a post. Votes mirrors the vote ledger the
// same way Post.Votes does.
type Comment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PostID         uuid.UUID `db:"post_id" json:"postId"`
	AuthorID       uuid.UUID `db:"author_id" json:"authorId"`
	AuthorUsername string    `db:"author_username" json:"authorUsername"`
	Body           string    `db:"body" json:"body"`
	Votes          int       `db:"votes" json:"votes"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
