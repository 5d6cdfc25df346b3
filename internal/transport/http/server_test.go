package http_test

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/builder"
	feedService "github.com/reshetovitsme/portfolio-feed/internal/modules/feed/service"
	postDomain "github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	httpServer "github.com/reshetovitsme/portfolio-feed/internal/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPosts struct {
	posts []*postDomain.Post
	err   error
}

func (s stubPosts) List(context.Context) ([]*postDomain.Post, error) {
	return s.posts, s.err
}

func newServer(posts stubPosts) *httptest.Server {
	cfg := &config.Config{
		SiteURL:         "https://jane.dev",
		SiteTitle:       "Jane Doe",
		SiteDescription: "Notes",
	}
	clock := builder.WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) })
	svc := feedService.New(cfg, posts, builder.New(clock))
	return httptest.NewServer(httpServer.New(cfg, svc).Handler())
}

func samplePosts() []*postDomain.Post {
	return []*postDomain.Post{
		{
			ID:          "hello",
			Title:       "Hello",
			Excerpt:     "First post",
			Status:      postDomain.PostStatusPublished,
			PublishDate: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestFeedRoutes(t *testing.T) {
	srv := newServer(stubPosts{posts: samplePosts()})
	defer srv.Close()

	tests := []struct {
		path        string
		contentType string
		marker      string
	}{
		{"/rss.xml", "application/rss+xml; charset=utf-8", `<rss version="2.0"`},
		{"/atom.xml", "application/atom+xml; charset=utf-8", `<feed xmlns="http://www.w3.org/2005/Atom">`},
		{"/feed.json", "application/feed+json; charset=utf-8", `"version": "https://jsonfeed.org/version/`},
		{"/feed/rss", "application/rss+xml; charset=utf-8", `<rss version="2.0"`},
		{"/feed/ATOM", "application/atom+xml; charset=utf-8", `<feed xmlns="http://www.w3.org/2005/Atom">`},
		{"/feed/json", "application/feed+json; charset=utf-8", `"title": "Hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			assert.Empty(t, resp.Header.Get("Cache-Control"))
			assert.Contains(t, body, tt.marker)
			assert.Contains(t, body, "https://jane.dev/blog/hello")
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	srv := newServer(stubPosts{posts: samplePosts()})
	defer srv.Close()

	resp, _ := get(t, srv.URL+"/feed/opml")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeedSourceFailure(t *testing.T) {
	srv := newServer(stubPosts{err: stderrors.New("disk on fire")})
	defer srv.Close()

	resp, body := get(t, srv.URL+"/rss.xml")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, body, "disk on fire")
}

func TestHealthAndIndex(t *testing.T) {
	srv := newServer(stubPosts{})
	defer srv.Close()

	resp, body := get(t, srv.URL+"/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "https://jane.dev/rss.xml")
	assert.Contains(t, body, "https://jane.dev/atom.xml")
	assert.Contains(t, body, "https://jane.dev/feed.json")

	resp, _ = get(t, srv.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
