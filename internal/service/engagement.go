package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// EngagementService owns the toggle relations (like, save, follow) and the
// counters they drive.
type EngagementService struct {
	db            *sqlite.Store
	notifications *NotificationService
	logger        *slog.Logger
	now           func() time.Time
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(db *sqlite.Store, notifications *NotificationService, logger *slog.Logger) *EngagementService {
	return &EngagementService{
		db:            db,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// ToggleLike flips the user's like on a quote and returns whether it is liked now.
// The quote's author is notified when a like is added.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, quoteID string) (bool, error) {
	likeID, err := id.Generate(id.PrefixLike)
	if err != nil {
		return false, fmt.Errorf("generate like id: %w", err)
	}

	liked, err := s.db.ToggleLike(ctx, likeID, userID, quoteID, s.now().UTC())
	if err != nil {
		return false, mapStoreError(err, "quote")
	}

	if liked {
		s.notifyLike(ctx, userID, quoteID)
	}

	s.logger.Debug("like toggled", "user_id", userID, "quote_id", quoteID, "liked", liked)
	return liked, nil
}

// ToggleSave flips the user's save on a quote and returns whether it is saved now.
func (s *EngagementService) ToggleSave(ctx context.Context, userID, quoteID string) (bool, error) {
	saveID, err := id.Generate(id.PrefixSave)
	if err != nil {
		return false, fmt.Errorf("generate save id: %w", err)
	}

	saved, err := s.db.ToggleSave(ctx, saveID, userID, quoteID, s.now().UTC())
	if err != nil {
		return false, mapStoreError(err, "quote")
	}

	s.logger.Debug("save toggled", "user_id", userID, "quote_id", quoteID, "saved", saved)
	return saved, nil
}

// ToggleFollow flips whether followerID follows targetID. Following yourself
// is rejected before anything is written.
func (s *EngagementService) ToggleFollow(ctx context.Context, followerID, targetID string) (bool, error) {
	if followerID == targetID {
		return false, domainerrors.Validation("cannot follow yourself")
	}

	followID, err := id.Generate(id.PrefixFollow)
	if err != nil {
		return false, fmt.Errorf("generate follow id: %w", err)
	}

	following, err := s.db.ToggleFollow(ctx, followID, followerID, targetID, s.now().UTC())
	if err != nil {
		return false, mapStoreError(err, "user")
	}

	if following {
		s.notifications.Notify(ctx, targetID, domain.NotificationFollow, followerID, followerID,
			s.actorName(ctx, followerID)+" started following you")
	}
	return following, nil
}

// RecordView increments a quote's view counter unconditionally.
func (s *EngagementService) RecordView(ctx context.Context, quoteID string) error {
	return mapStoreError(s.db.IncrementViews(ctx, quoteID), "quote")
}

// QuoteStatus reports whether the user likes and saves the quote.
func (s *EngagementService) QuoteStatus(ctx context.Context, userID, quoteID string) (domain.QuoteStatus, error) {
	status, err := s.db.QuoteStatus(ctx, userID, quoteID)
	if err != nil {
		return domain.QuoteStatus{}, fmt.Errorf("quote status: %w", err)
	}
	return status, nil
}

// FollowStatus reports whether userID follows targetID.
func (s *EngagementService) FollowStatus(ctx context.Context, userID, targetID string) (bool, error) {
	following, err := s.db.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return false, fmt.Errorf("follow status: %w", err)
	}
	return following, nil
}

// SavedQuotes returns the quotes a user has saved, most recent save first.
func (s *EngagementService) SavedQuotes(ctx context.Context, userID string, offset, limit int) ([]*domain.Quote, error) {
	offset, limit = domain.ClampPage(offset, limit)
	quotes, err := s.db.SavedQuotes(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("saved quotes: %w", err)
	}
	return quotes, nil
}

// ReconcileCounters recomputes every denormalized counter from the relation rows.
func (s *EngagementService) ReconcileCounters(ctx context.Context) (*domain.ReconcileReport, error) {
	report, err := s.db.ReconcileCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile counters: %w", err)
	}
	return report, nil
}

func (s *EngagementService) notifyLike(ctx context.Context, userID, quoteID string) {
	quote, err := s.db.GetQuote(ctx, quoteID)
	if err != nil {
		s.logger.Warn("failed to load liked quote for notification", "quote_id", quoteID, "error", err)
		return
	}
	s.notifications.Notify(ctx, quote.UserID, domain.NotificationLike, userID, quoteID,
		s.actorName(ctx, userID)+" liked your quote")
}

// actorName returns the username used in notification bodies.
func (s *EngagementService) actorName(ctx context.Context, userID string) string {
	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return "Someone"
	}
	return user.Username
}
