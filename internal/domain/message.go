package domain

import "time"

// Message is a direct message. Only Read changes after creation, and only when the
// receiver fetches the thread.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Counterpart returns the other participant of the message from userID's point of view.
func (m *Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}

// Conversation is one row per partner with the latest message exchanged.
type Conversation struct {
	Partner     UserProfile `json:"user"`
	LastMessage Message     `json:"last_message"`
}
