//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Format represents a syndication output format
// ENUM(rss,atom,json)
type Format string
