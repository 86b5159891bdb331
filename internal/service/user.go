package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// UpdateProfileRequest carries optional profile fields. Nil leaves a field unchanged.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,max=2048"`
}

// UserService manages user profiles and admin user operations.
type UserService struct {
	db     *sqlite.Store
	feed   *store.Store
	index  *search.SearchIndex
	strict bool
	logger *slog.Logger
	now    func() time.Time
}

// NewUserService creates a new user service. strictCascade selects whether
// deleting a user repairs counters on related entities.
func NewUserService(db *sqlite.Store, feed *store.Store, index *search.SearchIndex, strictCascade bool, logger *slog.Logger) *UserService {
	return &UserService{
		db:     db,
		feed:   feed,
		index:  index,
		strict: strictCascade,
		logger: logger,
		now:    time.Now,
	}
}

// GetProfile returns a user's public profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	u, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, "user")
	}
	profile := u.Profile()
	return &profile, nil
}

// UpdateProfile applies the provided fields and returns the updated profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.UserProfile, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	upd := domain.ProfileUpdate{
		FullName: req.FullName,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	}
	if err := s.db.UpdateUserProfile(ctx, userID, upd, s.now().UTC()); err != nil {
		return nil, mapStoreError(err, "user")
	}
	return s.GetProfile(ctx, userID)
}

// SetScore overwrites a user's stored reputation score.
func (s *UserService) SetScore(ctx context.Context, userID string, score int64) (*domain.UserProfile, error) {
	if score < 0 {
		return nil, domainerrors.Validation("score must not be negative")
	}
	if err := s.db.SetUserScore(ctx, userID, score, s.now().UTC()); err != nil {
		return nil, mapStoreError(err, "user")
	}
	return s.GetProfile(ctx, userID)
}

// DeleteUser removes a user with their quotes, messages and relations.
// Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return domainerrors.Validation("cannot delete yourself")
	}

	quotes, err := s.db.QuotesByAuthorSince(ctx, userID, time.Time{})
	if err != nil {
		return fmt.Errorf("list quotes of user: %w", err)
	}

	if err := s.db.DeleteUser(ctx, userID, s.strict); err != nil {
		return mapStoreError(err, "user")
	}

	// The feed and the index live outside the database; failures there are
	// only logged.
	if err := s.feed.DeleteUserNotifications(ctx, userID); err != nil {
		s.logger.Warn("failed to delete notifications", "user_id", userID, "error", err)
	}
	if len(quotes) > 0 {
		ids := make([]string, len(quotes))
		for i, q := range quotes {
			ids[i] = q.ID
		}
		if err := s.index.DeleteDocuments(ids); err != nil {
			s.logger.Warn("failed to remove quotes from index", "user_id", userID, "error", err)
		}
	}

	s.logger.Info("user deleted", "user_id", userID, "deleted_by", actorID, "strict", s.strict)
	return nil
}

// ListUsers returns every user profile in registration order.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserProfile, error) {
	users, err := s.db.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	profiles := make([]domain.UserProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Profile()
	}
	return profiles, nil
}
