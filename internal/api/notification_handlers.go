package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

func (s *Server) registerNotificationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List notifications",
		Description: "Returns the authenticated user's notifications, newest first",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListNotifications)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUnreadNotificationCount",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications/unread-count",
		Summary:     "Unread notification count",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUnreadNotificationCount)

	huma.Register(s.api, huma.Operation{
		OperationID: "markAllNotificationsRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/read-all",
		Summary:     "Mark all notifications read",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMarkAllNotificationsRead)

	huma.Register(s.api, huma.Operation{
		OperationID: "markNotificationRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/{id}/read",
		Summary:     "Mark notification read",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMarkNotificationRead)
}

// === DTOs ===

// ListNotificationsInput contains the page size for notifications.
type ListNotificationsInput struct {
	Authorization string `header:"Authorization"`
	Limit         int    `query:"limit" minimum:"0" doc:"Max notifications (default 20, max 100)"`
}

// NotificationListResponse lists notifications.
type NotificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications" doc:"Notifications, newest first"`
}

// NotificationListOutput wraps the notification list for Huma.
type NotificationListOutput struct {
	Body NotificationListResponse
}

// NotificationPathInput identifies a notification by path.
type NotificationPathInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Notification ID"`
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int `json:"updated" doc:"Number of notifications marked read"`
}

// MarkAllReadOutput wraps the mark-all response for Huma.
type MarkAllReadOutput struct {
	Body MarkAllReadResponse
}

// === Handlers ===

func (s *Server) handleListNotifications(ctx context.Context, input *ListNotificationsInput) (*NotificationListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.services.Notification.List(ctx, userID, input.Limit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return &NotificationListOutput{Body: NotificationListResponse{Notifications: notifications}}, nil
}

func (s *Server) handleGetUnreadNotificationCount(ctx context.Context, _ *AuthInput) (*UnreadCountOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.services.Notification.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountOutput{Body: UnreadCountResponse{Count: int64(count)}}, nil
}

func (s *Server) handleMarkNotificationRead(ctx context.Context, input *NotificationPathInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Notification.MarkRead(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return message("Notification marked as read"), nil
}

func (s *Server) handleMarkAllNotificationsRead(ctx context.Context, _ *AuthInput) (*MarkAllReadOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Notification.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadOutput{Body: MarkAllReadResponse{Updated: updated}}, nil
}
