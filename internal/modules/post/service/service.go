package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/post/repository"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles post business logic and promotes scheduled posts
type Service struct {
	repo     repository.Repository
	interval time.Duration
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New creates a new post service. interval is how often scheduled posts are checked.
func New(repo repository.Repository, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetClock replaces time.Now, mainly for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns every post, newest publish date first.
func (s *Service) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.GetAllPosts(ctx)
	if err != nil {
		return nil, oops.With("context", "failed to list posts").Wrap(err)
	}

	slices.SortStableFunc(posts, func(a, b *domain.Post) int {
		if c := b.PublishDate.Compare(a.PublishDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return posts, nil
}

// ListByStatus returns the posts in the given state, newest first.
func (s *Service) ListByStatus(ctx context.Context, status domain.PostStatus) ([]*domain.Post, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(posts, func(p *domain.Post, _ int) bool {
		return p.Status == status
	}), nil
}

// Get retrieves a post by ID
func (s *Service) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.repo.GetPost(ctx, postID)
}

// Save validates and stores a post. A published post without a publish
// date is stamped with the current time.
func (s *Service) Save(ctx context.Context, post *domain.Post) error {
	if post.Title == "" {
		return oops.Code("post_invalid").With("post_id", post.ID).Errorf("post title is required")
	}
	if post.Status != "" && !post.Status.IsValid() {
		return oops.With("post_id", post.ID, "status", post.Status).Wrap(errors.ErrInvalidStatus)
	}
	if post.Status == domain.PostStatusPublished && post.PublishDate.IsZero() {
		post.PublishDate = s.now()
	}
	return s.repo.SavePost(ctx, post)
}

// Delete removes a post
func (s *Service) Delete(ctx context.Context, postID string) error {
	return s.repo.DeletePost(ctx, postID)
}

// SetStatus moves a post to a new state. Publishing a post without a
// publish date stamps the current time.
func (s *Service) SetStatus(ctx context.Context, postID string, raw string) (*domain.Post, error) {
	status, err := domain.ParsePostStatus(raw)
	if err != nil {
		return nil, oops.With("post_id", postID, "status", raw).Wrap(errors.ErrInvalidStatus)
	}

	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.Status = status
	if status == domain.PostStatusPublished && post.PublishDate.IsZero() {
		post.PublishDate = s.now()
	}

	if err := s.repo.SavePost(ctx, post); err != nil {
		return nil, oops.With("post_id", postID, "status", status).Wrap(err)
	}
	return post, nil
}

// PublishDue publishes every scheduled post whose date has passed and
// returns how many were promoted.
func (s *Service) PublishDue(ctx context.Context, now time.Time) (int, error) {
	posts, err := s.repo.GetAllPosts(ctx)
	if err != nil {
		return 0, oops.With("context", "failed to load scheduled posts").Wrap(err)
	}

	due := lo.Filter(posts, func(p *domain.Post, _ int) bool {
		return p.IsDue(now)
	})

	published := 0
	for _, post := range due {
		post.Status = domain.PostStatusPublished
		if err := s.repo.SavePost(ctx, post); err != nil {
			slog.Error("Failed to publish scheduled post", "post_id", post.ID, "error", err)
			continue
		}
		slog.Info("Published scheduled post", "post_id", post.ID, "title", post.Title)
		published++
	}
	return published, nil
}

// Start begins the scheduled publishing loop
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.scheduleLoop(ctx)
}

// Stop stops the loop and waits for it to exit
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) scheduleLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runScheduled()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runScheduled()
		}
	}
}

func (s *Service) runScheduled() {
	count, err := s.PublishDue(s.ctx, s.now())
	if err != nil {
		slog.Error("Scheduled publish check failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Scheduled publish check", "published", count)
	}
}
