package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/user/domain"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/user/repository"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service decides who may manage posts.
//
// With an allow list configured only those IDs are accepted. Without one the
// first user to call Bootstrap becomes the administrator and only stored
// administrators are accepted afterwards.
type Service struct {
	repo    repository.Repository
	allowed []int64
	mu      sync.Mutex
}

// New creates a new user service
func New(repo repository.Repository, allowed []int64) *Service {
	return &Service{
		repo:    repo,
		allowed: allowed,
	}
}

// GetAllUsers retrieves all registered administrators
func (s *Service) GetAllUsers() ([]*domain.User, error) {
	return s.repo.GetAllUsers()
}

// IsAuthorized checks if a user may manage posts
func (s *Service) IsAuthorized(userID int64) bool {
	if len(s.allowed) > 0 {
		return lo.Contains(s.allowed, userID)
	}

	user, err := s.repo.GetUser(userID)
	return err == nil && user.IsAdmin
}

// Bootstrap registers userID as administrator when no allow list is set and
// nobody is registered yet. It reports whether the user is authorized.
func (s *Service) Bootstrap(userID int64, username string) (bool, error) {
	if len(s.allowed) > 0 {
		return s.IsAuthorized(userID), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.GetAllUsers()
	if err != nil {
		return false, oops.With("user_id", userID, "context", "failed to list users").Wrap(err)
	}

	if lo.SomeBy(users, func(u *domain.User) bool { return u.IsAdmin }) {
		return s.IsAuthorized(userID), nil
	}

	user := &domain.User{
		ID:       userID,
		Username: username,
		AddedAt:  time.Now(),
		IsAdmin:  true,
	}
	if err := s.repo.SaveUser(user); err != nil {
		return false, oops.With("user_id", userID, "context", "failed to register administrator").Wrap(err)
	}

	slog.Info("Registered first administrator", "user_id", userID, "username", username)
	return true, nil
}
