package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/post/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// FileStorage implements Repository with one JSON file per post
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based post repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	postPath := filepath.Join(basePath, "posts")
	if err := os.MkdirAll(postPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create posts directory").Wrap(err)
	}

	return &FileStorage{basePath: postPath}, nil
}

func (s *FileStorage) SavePost(_ context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := prepare(post, time.Now()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return oops.With("post_id", post.ID, "context", "failed to marshal post").Wrap(err)
	}

	if err := os.WriteFile(s.path(post.ID), data, 0644); err != nil {
		return oops.With("post_id", post.ID, "context", "failed to write post").Wrap(err)
	}
	return nil
}

func (s *FileStorage) GetPost(_ context.Context, postID string) (*domain.Post, error) {
	if !validID(postID) {
		return nil, oops.With("post_id", postID).Wrap(errors.ErrPostNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(postID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.With("post_id", postID).Wrap(errors.ErrPostNotFound)
		}
		return nil, oops.With("post_id", postID, "context", "failed to read post").Wrap(err)
	}

	var post domain.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, oops.With("post_id", postID, "context", "failed to unmarshal post").Wrap(err)
	}

	return &post, nil
}

func (s *FileStorage) GetAllPosts(_ context.Context) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read posts directory").Wrap(err)
	}

	posts := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Post, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			return nil, false
		}

		var post domain.Post
		if err := json.Unmarshal(data, &post); err != nil {
			return nil, false
		}

		return &post, true
	})

	return posts, nil
}

func (s *FileStorage) DeletePost(_ context.Context, postID string) error {
	if !validID(postID) {
		return oops.With("post_id", postID).Wrap(errors.ErrPostNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(postID)); err != nil {
		if os.IsNotExist(err) {
			return oops.With("post_id", postID).Wrap(errors.ErrPostNotFound)
		}
		return oops.With("post_id", postID, "context", "failed to delete post").Wrap(err)
	}
	return nil
}

// path expects an ID that passed validID.
func (s *FileStorage) path(postID string) string {
	return filepath.Join(s.basePath, postID+".json")
}
