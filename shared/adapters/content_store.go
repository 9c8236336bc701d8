// Copyright (c) 2025 ForumKit
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package adapters

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"

	commentRepository "github.com/forumkit/forum-api/comments/repository"
	"github.com/forumkit/forum-api/internal/database/postgres"
	postRepository "github.com/forumkit/forum-api/posts/repository"
	sharedInterfaces "github.com/forumkit/forum-api/shared/interfaces"
)

const snippetMaxLen = 80

// Ensure DirectContentStore implements ContentStore interface
var _ sharedInterfaces.ContentStore = (*DirectContentStore)(nil)

// DirectContentStore implements ContentStore by calling the post and comment
// repositories in-process. The ItemType discriminator picks the table.
type DirectContentStore struct {
	client      *postgres.Client
	postRepo    postRepository.PostRepository
	commentRepo commentRepository.CommentRepository
}

// NewDirectContentStore creates a new DirectContentStore adapter.
func NewDirectContentStore(client *postgres.Client, postRepo postRepository.PostRepository, commentRepo commentRepository.CommentRepository) *DirectContentStore {
	return &DirectContentStore{
		client:      client,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Exists reports whether the referenced row exists at the time of the call.
func (a *DirectContentStore) Exists(ctx context.Context, ref sharedInterfaces.ItemRef) (bool, error) {
	switch ref.Type {
	case sharedInterfaces.ItemTypePost:
		existing, err := a.postRepo.ResolveExisting(ctx, []uuid.UUID{ref.ID})
		if err != nil {
			return false, err
		}
		return len(existing) == 1, nil
	case sharedInterfaces.ItemTypeComment:
		existing, err := a.commentRepo.ResolveExisting(ctx, []uuid.UUID{ref.ID})
		if err != nil {
			return false, err
		}
		return len(existing) == 1, nil
	default:
		return false, fmt.Errorf("unknown item type: %s", ref.Type)
	}
}

// IncrementVotes applies a relative delta to the item's votes counter.
func (a *DirectContentStore) IncrementVotes(ctx context.Context, ref sharedInterfaces.ItemRef, delta int) (int, error) {
	switch ref.Type {
	case sharedInterfaces.ItemTypePost:
		return a.postRepo.IncrementVotes(ctx, ref.ID, delta)
	case sharedInterfaces.ItemTypeComment:
		return a.commentRepo.IncrementVotes(ctx, ref.ID, delta)
	default:
		return 0, fmt.Errorf("unknown item type: %s", ref.Type)
	}
}

// Snippet returns a short display excerpt of the item.
func (a *DirectContentStore) Snippet(ctx context.Context, ref sharedInterfaces.ItemRef) (string, error) {
	switch ref.Type {
	case sharedInterfaces.ItemTypePost:
		post, err := a.postRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return Truncate(post.Title, snippetMaxLen), nil
	case sharedInterfaces.ItemTypeComment:
		comment, err := a.commentRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return Truncate(comment.Body, snippetMaxLen), nil
	default:
		return "", fmt.Errorf("unknown item type: %s", ref.Type)
	}
}

// WithTransaction executes fn atomically
func (a *DirectContentStore) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return a.client.WithTransaction(ctx, fn)
}

// Truncate shortens s to at most max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
