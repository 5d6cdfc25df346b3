package domain

import "time"

// Item is one syndicated entry, independent of the output format.
type Item struct {
	ID              string
	Title           string
	Link            string
	Description     string
	PublicationDate time.Time
	Author          string
	Category        string
	// Content is raw HTML and is embedded verbatim.
	Content  string
	ImageURL string
}

// ChannelOptions carries the feed-level metadata.
// Title, Description, SiteURL and FeedURL are required.
type ChannelOptions struct {
	Title          string
	Description    string
	SiteURL        string
	FeedURL        string
	Language       string
	Copyright      string
	ManagingEditor string
	WebMaster      string
	TTL            int
	ImageURL       string
}
