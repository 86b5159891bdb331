package domain

import "time"

// NotificationType is the closed set of notification kinds.
type NotificationType string

// Notification types.
const (
	NotificationLike    NotificationType = "like"
	NotificationFollow  NotificationType = "follow"
	NotificationMessage NotificationType = "message"
	NotificationSystem  NotificationType = "system"
)

// Valid reports whether t is one of the known types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationFollow, NotificationMessage, NotificationSystem:
		return true
	default:
		return false
	}
}

// Notification is addressed to a single user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	ActorID   string           `json:"actor_id,omitempty"`
	EntityID  string           `json:"entity_id,omitempty"`
	Body      string           `json:"body"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
