// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Post represents a forum post. Votes is the denormalized running sum of
// vote deltas for the row; every vote mutation updates it in the same
// transaction as the vote ledger.
type Post struct {
	ID             uuid.UUID `db:"id" json:"id"`
	AuthorID       uuid.UUID `db:"author_id" json:"authorId"`
	AuthorUsername string    `db:"author_username" json:"authorUsername"`
	Title          string    `db:"title" json:"title"`
	Body           string    `db:"body" json:"body"`
	Votes          int       `db:"votes" json:"votes"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
