package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// maxNotificationsPage caps a single notification listing.
const maxNotificationsPage = 100

// NotificationService manages per-user notification feeds.
type NotificationService struct {
	feed   *store.Store
	db     *sqlite.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewNotificationService creates a new notification service.
func NewNotificationService(feed *store.Store, db *sqlite.Store, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		feed:   feed,
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > maxNotificationsPage {
		limit = domain.DefaultPageLimit
	}
	notifications, err := s.feed.ListNotifications(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	n, err := s.feed.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	return mapStoreError(s.feed.MarkRead(ctx, userID, notificationID), "notification")
}

// MarkAllRead marks every unread notification as read and returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	n, err := s.feed.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return n, nil
}

// Notify records a notification for userID. It never fails the caller:
// errors are logged and dropped. Actors are not notified about their own actions.
func (s *NotificationService) Notify(ctx context.Context, userID string, typ domain.NotificationType, actorID, entityID, body string) {
	if userID == "" || (actorID != "" && actorID == userID) {
		return
	}
	if _, err := s.create(ctx, userID, typ, actorID, entityID, body); err != nil {
		s.logger.Warn("failed to create notification",
			"user_id", userID,
			"type", typ,
			"error", err,
		)
	}
}

// SendSystem delivers an admin-authored system notification to one user.
func (s *NotificationService) SendSystem(ctx context.Context, userID, body string) (*domain.Notification, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domainerrors.Validation("body is required")
	}

	exists, err := s.db.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, domainerrors.NotFound("user not found")
	}

	return s.create(ctx, userID, domain.NotificationSystem, "", "", body)
}

func (s *NotificationService) create(ctx context.Context, userID string, typ domain.NotificationType, actorID, entityID, body string) (*domain.Notification, error) {
	if !typ.Valid() {
		return nil, domainerrors.Validationf("unknown notification type %q", typ)
	}

	notificationID, err := id.Generate(id.PrefixNotification)
	if err != nil {
		return nil, fmt.Errorf("generate notification id: %w", err)
	}

	n := &domain.Notification{
		ID:        notificationID,
		UserID:    userID,
		Type:      typ,
		ActorID:   actorID,
		EntityID:  entityID,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.feed.CreateNotification(ctx, n); err != nil {
		return nil, mapStoreError(err, "notification")
	}
	return n, nil
}
