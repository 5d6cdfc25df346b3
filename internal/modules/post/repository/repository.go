package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/oops"
)

// Repository defines the interface for post persistence.
// Implementations: FileStorage (JSON files) and Postgres.
type Repository interface {
	SavePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	GetAllPosts(ctx context.Context) ([]*domain.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

// prepare assigns an ID to new posts and stamps the audit times.
func prepare(post *domain.Post, now time.Time) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if !validID(post.ID) {
		return oops.With("post_id", post.ID).Wrap(errors.ErrInvalidPostID)
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}
	return nil
}

// validID rejects IDs that are not a single path element.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`+"\x00")
}
