package service

import (
	"context"
	"log/slog"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/builder"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	postDomain "github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// PostSource supplies posts newest first.
type PostSource interface {
	List(ctx context.Context) ([]*postDomain.Post, error)
}

// Document is a rendered feed ready to be written to a response.
type Document struct {
	Format      domain.Format
	ContentType string
	Body        string
}

// Service handles feed generation for the configured site
type Service struct {
	posts   PostSource
	builder *builder.Builder
	blog    *Blog
	siteURL string
	limit   int
}

// New creates a new feed service
func New(cfg *config.Config, posts PostSource, b *builder.Builder) *Service {
	site := Site{
		Title:          cfg.SiteTitle,
		Description:    cfg.SiteDescription,
		Language:       cfg.SiteLanguage,
		Copyright:      cfg.SiteCopyright,
		ManagingEditor: cfg.SiteManagingEditor,
		WebMaster:      cfg.SiteWebMaster,
		ImageURL:       cfg.SiteImageURL,
		TTL:            cfg.FeedTTL,
	}
	return &Service{
		posts:   posts,
		builder: b,
		blog:    NewBlog(site, b),
		siteURL: cfg.SiteURL,
		limit:   cfg.FeedLimit,
	}
}

// Feed renders the published posts in the requested format.
func (s *Service) Feed(ctx context.Context, format domain.Format) (*Document, error) {
	contentType, err := s.builder.ContentType(format)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, oops.With("format", format, "context", "failed to load posts").Wrap(err)
	}

	published := s.published(posts)
	body, err := s.blog.Render(format, published, s.siteURL)
	if err != nil {
		return nil, oops.With("format", format, "posts", len(published)).Wrap(err)
	}

	return &Document{Format: format, ContentType: contentType, Body: body}, nil
}

// URLs returns the public address of every feed.
func (s *Service) URLs() map[domain.Format]string {
	urls := make(map[domain.Format]string)
	for _, name := range domain.FormatNames() {
		format := domain.Format(name)
		urls[format] = s.siteURL + FeedPath(format)
	}
	return urls
}

// published drops unpublished posts and posts that cannot form a valid item,
// then applies the feed limit.
func (s *Service) published(posts []*postDomain.Post) []*postDomain.Post {
	valid := lo.Filter(posts, func(p *postDomain.Post, _ int) bool {
		if p == nil || !p.IsPublished() {
			return false
		}
		if err := builder.ValidateItem(Item(p, s.siteURL)); err != nil {
			slog.Warn("Skipping post in feed", "post_id", p.ID, "error", err)
			return false
		}
		return true
	})
	if s.limit > 0 {
		return lo.Subset(valid, 0, uint(s.limit))
	}
	return valid
}
