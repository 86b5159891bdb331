package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// MaxMessageLength is the longest accepted message body, in characters.
const MaxMessageLength = 2000

// ConversationService handles direct messages and the per-partner inbox view.
type ConversationService struct {
	db            *sqlite.Store
	notifications *NotificationService
	logger        *slog.Logger
	now           func() time.Time
}

// NewConversationService creates a new conversation service.
func NewConversationService(db *sqlite.Store, notifications *NotificationService, logger *slog.Logger) *ConversationService {
	return &ConversationService{
		db:            db,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// SendMessage stores a message from senderID to receiverID and notifies the receiver.
func (s *ConversationService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	switch {
	case content == "":
		return nil, domainerrors.Validation("content is required")
	case utf8.RuneCountInString(content) > MaxMessageLength:
		return nil, domainerrors.Validationf("content exceeds maximum length of %d characters", MaxMessageLength)
	case senderID == receiverID:
		return nil, domainerrors.Validation("cannot message yourself")
	}

	exists, err := s.db.UserExists(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check receiver: %w", err)
	}
	if !exists {
		return nil, domainerrors.NotFound("user not found")
	}

	messageID, err := id.Generate(id.PrefixMessage)
	if err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	msg := &domain.Message{
		ID:         messageID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.db.CreateMessage(ctx, msg); err != nil {
		return nil, mapStoreError(err, "message")
	}

	s.notifications.Notify(ctx, receiverID, domain.NotificationMessage, senderID, messageID, previewMessage(content))
	return msg, nil
}

// GetConversations returns one entry per partner with the latest message
// exchanged in either direction, most recent conversation first. Partners that
// no longer exist are skipped.
func (s *ConversationService) GetConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	messages, err := s.db.MessagesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	// Messages are newest first, so the first one seen per partner is the latest.
	latest := make(map[string]*domain.Message)
	order := make([]string, 0)
	for _, m := range messages {
		partner := m.Counterpart(userID)
		if _, seen := latest[partner]; seen {
			continue
		}
		latest[partner] = m
		order = append(order, partner)
	}

	partners, err := s.db.GetUsersByIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("load partners: %w", err)
	}

	conversations := make([]domain.Conversation, 0, len(order))
	for _, partnerID := range order {
		partner, ok := partners[partnerID]
		if !ok {
			continue
		}
		conversations = append(conversations, domain.Conversation{
			Partner:     partner.Profile(),
			LastMessage: *latest[partnerID],
		})
	}
	return conversations, nil
}

// GetThread returns the messages between userID and partnerID, oldest first,
// then marks the partner's unread messages to userID as read. The returned
// messages carry the read state from before the call.
func (s *ConversationService) GetThread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error) {
	messages, err := s.db.Thread(ctx, userID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}

	marked, err := s.db.MarkThreadRead(ctx, userID, partnerID)
	if err != nil {
		return nil, fmt.Errorf("mark thread read: %w", err)
	}
	if marked > 0 {
		s.logger.Debug("marked messages read", "user_id", userID, "partner_id", partnerID, "count", marked)
	}
	return messages, nil
}

// UnreadCount returns how many messages addressed to userID are unread.
func (s *ConversationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	n, err := s.db.CountUnreadMessages(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}

// previewMessage shortens a message body for its notification.
func previewMessage(content string) string {
	const maxPreview = 80
	if utf8.RuneCountInString(content) <= maxPreview {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxPreview]) + "..."
}
