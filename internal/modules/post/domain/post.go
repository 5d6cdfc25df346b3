package domain

import "time"

// Post is a blog article managed by the site.
type Post struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Content         string     `json:"content,omitempty"`
	ContentMarkdown string     `json:"content_markdown,omitempty"`
	Status          PostStatus `json:"status"`
	PublishDate     time.Time  `json:"publish_date"`
	Author          *Author    `json:"author,omitempty"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Author is the byline attached to a post
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// AuthorName returns the author's name or an empty string.
func (p *Post) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Name
}

// IsPublished reports whether the post should be syndicated.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// IsDue reports whether a scheduled post has reached its publish date.
func (p *Post) IsDue(now time.Time) bool {
	return p.Status == PostStatusScheduled && !p.PublishDate.IsZero() && !p.PublishDate.After(now)
}
