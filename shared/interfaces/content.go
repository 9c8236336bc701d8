// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package interfaces

import (
	"context"

	"github.com/gofrs/uuid"
)

// ItemType discriminates the two kinds of votable/reportable content.
type ItemType string

const (
	ItemTypePost    ItemType = "post"
	ItemTypeComment ItemType = "comment"
)

// IsValid reports whether the item type is one of the known kinds.
func (t ItemType) IsValid() bool {
	return t == ItemTypePost || t == ItemTypeComment
}

// ItemRef is a discriminated pointer to a post or comment by id.
type ItemRef struct {
	Type ItemType  `json:"itemType"`
	ID   uuid.UUID `json:"itemId"`
}

// ContentStore is the public interface over the posts and comments tables
// that the voting and reporting services depend on. It hides which table a
// given item lives in behind the ItemType discriminator.
//
// An in-process adapter over the two repositories implements this for
// monolith deployment; services depend on the interface only.
type ContentStore interface {
	// Exists reports whether the referenced row exists at the time of the call.
	Exists(ctx context.Context, ref ItemRef) (bool, error)

	// IncrementVotes applies a relative delta to the item's denormalized
	// votes counter and returns the resulting value. The delta must be
	// applied at the store, never computed from a stale read. Wraps
	// sql.ErrNoRows when the item is gone.
	IncrementVotes(ctx context.Context, ref ItemRef, delta int) (int, error)

	// Snippet returns a short display excerpt of the item (post title or
	// comment body prefix). Wraps sql.ErrNoRows when the item is gone.
	Snippet(ctx context.Context, ref ItemRef) (string, error)

	// WithTransaction executes fn atomically; repository calls made with the
	// context passed to fn join the same transaction.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
