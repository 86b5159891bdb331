package sqlite

import (
	"context"
	"database/sql"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

const messageColumns = `id, sender_id, receiver_id, content, read, created_at`

func scanMessage(row scanner) (*domain.Message, error) {
	var (
		m         domain.Message
		read      int
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &read, &createdAt); err != nil {
		return nil, err
	}
	m.Read = read != 0

	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMessages(rows *sql.Rows) ([]*domain.Message, error) {
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CreateMessage stores a direct message.
func (s *Store) CreateMessage(ctx context.Context, m *domain.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.ReceiverID, m.Content, boolToInt(m.Read), formatTime(m.CreatedAt))
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists
	case isForeignKeyViolation(err):
		return store.ErrNotFound.WithMessage("user not found")
	}
	return err
}

// MessagesForUser returns every message userID sent or received, newest first.
func (s *Store) MessagesForUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE sender_id = ?1 OR receiver_id = ?1
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// Thread returns the messages exchanged between two users, oldest first.
func (s *Store) Thread(ctx context.Context, userID, partnerID string) ([]*domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id = ?1 AND receiver_id = ?2) OR (sender_id = ?2 AND receiver_id = ?1)
		ORDER BY created_at ASC, rowid ASC`, userID, partnerID)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// MarkThreadRead marks every unread message from partnerID to userID as read
// and returns how many changed.
func (s *Store) MarkThreadRead(ctx context.Context, userID, partnerID string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE messages SET read = 1 WHERE receiver_id = ? AND sender_id = ? AND read = 0`,
		userID, partnerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CountUnreadMessages counts unread messages addressed to userID.
func (s *Store) CountUnreadMessages(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = ? AND read = 0`, userID).Scan(&n)
	return n, err
}
