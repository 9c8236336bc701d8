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

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

// IsValid reports whether the vote type is one of the known directions.
func (t VoteType) IsValid() bool {
	return t == VoteTypeUp || t == VoteTypeDown
}

// ScoreValue returns the counter delta a vote of this type contributes:
// +1 for up, -1 for down.
func (t VoteType) ScoreValue() int {
	switch t {
	case VoteTypeUp:
		return 1
	case VoteTypeDown:
		return -1
	}
	return 0
}

// Actions reported by a cast operation.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// Vote represents a user's vote on a post or comment. At most one row exists
// per (user, item type, item id); the database enforces this with a unique
// constraint, application logic alone is not trusted.
type Vote struct {
	ID        uuid.UUID           `db:"id" json:"id"`
	UserID    uuid.UUID           `db:"user_id" json:"userId"`
	ItemType  interfaces.ItemType `db:"item_type" json:"itemType"`
	ItemID    uuid.UUID           `db:"item_id" json:"itemId"`
	VoteType  VoteType            `db:"vote_type" json:"voteType"`
	CreatedAt time.Time           `db:"created_at" json:"createdAt"`
}
