package service_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/service"
	postDomain "github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteURL = "https://jane.dev"

func blogPosts() []*postDomain.Post {
	return []*postDomain.Post{
		{
			ID:            "42",
			Title:         "Shipping feeds",
			Excerpt:       "How the feed works",
			Content:       "<p>Body</p>",
			Status:        postDomain.PostStatusPublished,
			PublishDate:   time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
			Author:        &postDomain.Author{Name: "Jane"},
			Category:      "engineering",
			FeaturedImage: "https://jane.dev/img/42.jpg",
		},
		{
			ID:          "43",
			Title:       "Work in progress",
			Status:      postDomain.PostStatusDraft,
			PublishDate: time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuildBlogRssFeedFiltersDrafts(t *testing.T) {
	doc := service.BuildBlogRssFeed(blogPosts(), siteURL)

	assert.Equal(t, 1, strings.Count(doc, "<item>"))
	assert.Contains(t, doc, "<link>https://jane.dev/blog/42</link>")
	assert.Contains(t, doc, "<title>Shipping feeds</title>")
	assert.NotContains(t, doc, "Work in progress")
	assert.Contains(t, doc, "<title>Portfolio</title>")
	assert.Contains(t, doc, "<managingEditor>editor@localhost</managingEditor>")
	assert.Contains(t, doc, `<atom:link href="https://jane.dev/rss.xml" rel="self" type="application/rss+xml"/>`)
	assert.Contains(t, doc, `<enclosure url="https://jane.dev/img/42.jpg" length="0" type="image/jpeg"/>`)
}

func TestBuildBlogAtomFeedFiltersDrafts(t *testing.T) {
	doc := service.BuildBlogAtomFeed(blogPosts(), siteURL)

	assert.Equal(t, 1, strings.Count(doc, "<entry>"))
	assert.Contains(t, doc, "<id>https://jane.dev/blog/42</id>")
	assert.Contains(t, doc, "<summary>How the feed works</summary>")
	assert.Contains(t, doc, `<category term="engineering"/>`)
	assert.Contains(t, doc, `<link href="https://jane.dev/atom.xml" rel="self" type="application/atom+xml"/>`)
	assert.NotContains(t, doc, "Work in progress")
}

func TestItemsMapping(t *testing.T) {
	posts := append(blogPosts(), &postDomain.Post{
		ID:              "44",
		Title:           "Markdown post",
		Status:          postDomain.PostStatusPublished,
		ContentMarkdown: "Hello **there**",
		PublishDate:     time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC),
	}, nil)

	items := service.Items(posts, siteURL)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "42", first.ID)
	assert.Equal(t, "https://jane.dev/blog/42", first.Link)
	assert.Equal(t, "How the feed works", first.Description)
	assert.Equal(t, "Jane", first.Author)
	assert.Equal(t, "engineering", first.Category)
	assert.Equal(t, "<p>Body</p>", first.Content)
	assert.Equal(t, "https://jane.dev/img/42.jpg", first.ImageURL)

	second := items[1]
	assert.Equal(t, "", second.Description)
	assert.Equal(t, "", second.Author)
	assert.Contains(t, second.Content, "<strong>there</strong>")
}

func TestItemsKeepInputOrder(t *testing.T) {
	posts := []*postDomain.Post{
		{ID: "b", Title: "B", Status: postDomain.PostStatusPublished, PublishDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "a", Title: "A", Status: postDomain.PostStatusPublished, PublishDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	items := service.Items(posts, siteURL)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestFeedPath(t *testing.T) {
	assert.Equal(t, "/rss.xml", service.FeedPath(domain.FormatRss))
	assert.Equal(t, "/atom.xml", service.FeedPath(domain.FormatAtom))
	assert.Equal(t, "/feed.json", service.FeedPath(domain.FormatJson))
}

func TestDefaultSiteCopyrightFollowsClock(t *testing.T) {
	assert.Equal(t, "© 2023 Portfolio. All rights reserved.", service.DefaultSite(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)).Copyright)
	assert.Equal(t, "© 2024 Portfolio. All rights reserved.", service.DefaultSite(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Copyright)

	doc := service.BuildBlogRssFeed(nil, siteURL)
	assert.Contains(t, doc, fmt.Sprintf("<copyright>© %d Portfolio. All rights reserved.</copyright>", time.Now().Year()))
}
