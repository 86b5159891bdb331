package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

// Notification key layout. The user index uses inverted timestamps so a forward
// prefix scan yields newest first.
//
//	notif:{id}                                  -> Notification JSON
//	notif:idx:user:{userID}:{invertedTS}:{id}   -> ""
//	notif:unread:{userID}:{id}                  -> ""
const (
	notificationPrefix        = "notif:"
	notificationIdxUserPrefix = "notif:idx:user:"
	notificationUnreadPrefix  = "notif:unread:"
)

// invertedTimestamp returns a string that sorts in descending time order.
func invertedTimestamp(t time.Time) string {
	return fmt.Sprintf("%019d", math.MaxInt64-t.UnixNano())
}

func notificationKey(id string) []byte {
	return []byte(notificationPrefix + id)
}

func notificationUserIndexKey(n *domain.Notification) []byte {
	return []byte(notificationIdxUserPrefix + n.UserID + ":" + invertedTimestamp(n.CreatedAt) + ":" + n.ID)
}

func notificationUnreadKey(userID, id string) []byte {
	return []byte(notificationUnreadPrefix + userID + ":" + id)
}

// CreateNotification stores a notification with its indexes in one transaction.
func (s *Store) CreateNotification(ctx context.Context, n *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ID == "" || n.UserID == "" {
		return ErrInvalidInput.WithMessage("notification requires id and user id")
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := notificationKey(n.ID)
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists.WithMessage("notification already exists")
		} else if !notFound(err) {
			return fmt.Errorf("checking notification: %w", err)
		}

		if err := setInTxn(txn, key, n); err != nil {
			return err
		}
		if err := txn.Set(notificationUserIndexKey(n), []byte{}); err != nil {
			return fmt.Errorf("setting user index: %w", err)
		}
		if !n.Read {
			if err := txn.Set(notificationUnreadKey(n.UserID, n.ID), []byte{}); err != nil {
				return fmt.Errorf("setting unread marker: %w", err)
			}
		}
		return nil
	})
}

// GetNotification retrieves a single notification by ID.
func (s *Store) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var n domain.Notification
	err := s.db.View(func(txn *badger.Txn) error {
		return getInTxn(txn, notificationKey(id), &n)
	})
	if notFound(err) {
		return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification %s: %w", id, err)
	}
	return &n, nil
}

// ListNotifications returns up to limit notifications for a user, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(notificationIdxUserPrefix + userID + ":")
	notifications := make([]*domain.Notification, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(notifications) >= limit {
				break
			}

			id := idFromIndexKey(string(it.Item().Key()))
			var n domain.Notification
			if err := getInTxn(txn, notificationKey(id), &n); err != nil {
				if notFound(err) {
					continue
				}
				return err
			}
			notifications = append(notifications, &n)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user.
func (s *Store) CountUnread(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := []byte(notificationUnreadPrefix + userID + ":")
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// MarkRead marks a notification read. Only the owner may do so; a foreign or
// missing notification reports ErrNotFound.
func (s *Store) MarkRead(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var n domain.Notification
		if err := getInTxn(txn, notificationKey(id), &n); err != nil {
			if notFound(err) {
				return fmt.Errorf("notification %s: %w", id, ErrNotFound)
			}
			return err
		}
		if n.UserID != userID {
			return fmt.Errorf("notification %s: %w", id, ErrNotFound)
		}
		if n.Read {
			return nil
		}

		n.Read = true
		if err := setInTxn(txn, notificationKey(id), &n); err != nil {
			return err
		}
		return txn.Delete(notificationUnreadKey(userID, id))
	})
}

// MarkAllRead marks every unread notification of a user read and returns how many changed.
func (s *Store) MarkAllRead(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := []byte(notificationUnreadPrefix + userID + ":")
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().KeyCopy(nil)), string(prefix)))
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scanning unread notifications: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, id := range ids {
		n, err := s.GetNotification(ctx, id)
		if err != nil {
			continue
		}
		n.Read = true
		data, err := json.Marshal(n)
		if err != nil {
			return 0, err
		}
		if err := wb.Set(notificationKey(id), data); err != nil {
			return 0, err
		}
		if err := wb.Delete(notificationUnreadKey(userID, id)); err != nil {
			return 0, err
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flushing read markers: %w", err)
	}
	return len(ids), nil
}

// DeleteUserNotifications removes every notification addressed to a user.
func (s *Store) DeleteUserNotifications(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var keys [][]byte
	collect := func(prefix []byte, withPrimary bool) error {
		return s.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			opts.Prefix = prefix

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				key := it.Item().KeyCopy(nil)
				keys = append(keys, key)
				if withPrimary {
					keys = append(keys, notificationKey(idFromIndexKey(string(key))))
				}
			}
			return nil
		})
	}

	if err := collect([]byte(notificationIdxUserPrefix+userID+":"), true); err != nil {
		return err
	}
	if err := collect([]byte(notificationUnreadPrefix+userID+":"), false); err != nil {
		return err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// idFromIndexKey extracts the trailing ID segment of an index key.
func idFromIndexKey(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		return key[i+1:]
	}
	return ""
}
