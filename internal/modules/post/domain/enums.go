//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// PostStatus represents the lifecycle state of a post
// ENUM(draft,published,scheduled,archived)
type PostStatus string
