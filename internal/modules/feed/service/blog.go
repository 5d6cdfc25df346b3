package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/builder"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	postDomain "github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/markdown"
	"github.com/samber/lo"
)

// Site is the identity the blog feeds are published under.
type Site struct {
	Title          string
	Description    string
	Language       string
	Copyright      string
	ManagingEditor string
	WebMaster      string
	ImageURL       string
	TTL            int
}

// DefaultSite is the identity BuildBlogRssFeed and BuildBlogAtomFeed publish under.
// The copyright carries the year of now.
func DefaultSite(now time.Time) Site {
	return Site{
		Title:          "Portfolio",
		Description:    "Projects, notes and articles",
		Language:       builder.DefaultLanguage,
		Copyright:      fmt.Sprintf("© %d Portfolio. All rights reserved.", now.Year()),
		ManagingEditor: "editor@localhost",
	}
}

// Feed file names below the site URL.
const (
	rssPath  = "/rss.xml"
	atomPath = "/atom.xml"
	jsonPath = "/feed.json"
)

// Blog maps posts to feed items and renders them for one site.
type Blog struct {
	site    Site
	builder *builder.Builder
}

// NewBlog creates a blog feed renderer
func NewBlog(site Site, b *builder.Builder) *Blog {
	return &Blog{site: site, builder: b}
}

// BuildBlogRssFeed renders the published posts as RSS under DefaultSite.
func BuildBlogRssFeed(posts []*postDomain.Post, siteURL string) string {
	return NewBlog(DefaultSite(time.Now()), builder.New()).RSS(posts, siteURL)
}

// BuildBlogAtomFeed renders the published posts as Atom under DefaultSite.
func BuildBlogAtomFeed(posts []*postDomain.Post, siteURL string) string {
	return NewBlog(DefaultSite(time.Now()), builder.New()).Atom(posts, siteURL)
}

// RSS renders without validation, like builder.ToRss.
func (b *Blog) RSS(posts []*postDomain.Post, siteURL string) string {
	return b.builder.ToRss(Items(posts, siteURL), b.Channel(siteURL, domain.FormatRss))
}

// Atom renders without validation, like builder.ToAtom.
func (b *Blog) Atom(posts []*postDomain.Post, siteURL string) string {
	return b.builder.ToAtom(Items(posts, siteURL), b.Channel(siteURL, domain.FormatAtom))
}

// Render validates and renders the published posts in any registered format.
func (b *Blog) Render(format domain.Format, posts []*postDomain.Post, siteURL string) (string, error) {
	return b.builder.Render(format, Items(posts, siteURL), b.Channel(siteURL, format))
}

// Channel builds the channel options for the feed served at format's path.
func (b *Blog) Channel(siteURL string, format domain.Format) domain.ChannelOptions {
	return domain.ChannelOptions{
		Title:          b.site.Title,
		Description:    b.site.Description,
		SiteURL:        siteURL,
		FeedURL:        siteURL + FeedPath(format),
		Language:       b.site.Language,
		Copyright:      b.site.Copyright,
		ManagingEditor: b.site.ManagingEditor,
		WebMaster:      b.site.WebMaster,
		TTL:            b.site.TTL,
		ImageURL:       b.site.ImageURL,
	}
}

// FeedPath returns the path a format is served under.
func FeedPath(format domain.Format) string {
	switch format {
	case domain.FormatAtom:
		return atomPath
	case domain.FormatJson:
		return jsonPath
	default:
		return rssPath
	}
}

// Items keeps the published posts in their given order and maps them to feed items.
func Items(posts []*postDomain.Post, siteURL string) []domain.Item {
	published := lo.Filter(posts, func(p *postDomain.Post, _ int) bool {
		return p != nil && p.IsPublished()
	})
	return lo.Map(published, func(p *postDomain.Post, _ int) domain.Item {
		return Item(p, siteURL)
	})
}

// Item maps one post to a feed item linked under siteURL/blog.
func Item(p *postDomain.Post, siteURL string) domain.Item {
	return domain.Item{
		ID:              p.ID,
		Title:           p.Title,
		Link:            fmt.Sprintf("%s/blog/%s", siteURL, p.ID),
		Description:     p.Excerpt,
		PublicationDate: p.PublishDate,
		Author:          p.AuthorName(),
		Category:        p.Category,
		Content:         postContent(p),
		ImageURL:        p.FeaturedImage,
	}
}

// postContent prefers stored HTML and falls back to rendered Markdown.
func postContent(p *postDomain.Post) string {
	if p.Content != "" || p.ContentMarkdown == "" {
		return p.Content
	}
	html, err := markdown.ToHTML(p.ContentMarkdown)
	if err != nil {
		slog.Warn("Failed to render post markdown", "post_id", p.ID, "error", err)
		return ""
	}
	return html
}
