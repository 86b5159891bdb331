package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

// quoteRelation describes a toggle table keyed by (user_id, quote_id) and the
// quote counter it feeds.
type quoteRelation struct {
	table   string
	counter string
}

var (
	likeRelation = quoteRelation{table: "likes", counter: "likes_count"}
	saveRelation = quoteRelation{table: "saves", counter: "saves_count"}
)

// ToggleLike flips the like of userID on quoteID and returns whether the quote
// is liked afterwards. likeID is used only when a like is created.
func (s *Store) ToggleLike(ctx context.Context, likeID, userID, quoteID string, now time.Time) (bool, error) {
	return s.toggleQuoteRelation(ctx, likeRelation, likeID, userID, quoteID, now)
}

// ToggleSave flips the save of userID on quoteID and returns whether the quote
// is saved afterwards.
func (s *Store) ToggleSave(ctx context.Context, saveID, userID, quoteID string, now time.Time) (bool, error) {
	return s.toggleQuoteRelation(ctx, saveRelation, saveID, userID, quoteID, now)
}

// toggleQuoteRelation deletes the relation row if present, otherwise inserts
// it, and moves the counter by one in the same transaction. Decrements are
// clamped at zero.
func (s *Store) toggleQuoteRelation(ctx context.Context, rel quoteRelation, relID, userID, quoteID string, now time.Time) (bool, error) {
	var active bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM quotes WHERE id = ?`, quoteID).Scan(&one); err != nil {
			return notFoundOr(err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM `+rel.table+` WHERE user_id = ? AND quote_id = ?`, userID, quoteID)
		if err != nil {
			return err
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if removed > 0 {
			_, err = tx.ExecContext(ctx,
				`UPDATE quotes SET `+rel.counter+` = MAX(0, `+rel.counter+` - 1) WHERE id = ?`, quoteID)
			active = false
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO `+rel.table+` (id, user_id, quote_id, created_at) VALUES (?, ?, ?, ?)`,
			relID, userID, quoteID, formatTime(now))
		if isForeignKeyViolation(err) {
			return store.ErrNotFound.WithMessage("user not found")
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE quotes SET `+rel.counter+` = `+rel.counter+` + 1 WHERE id = ?`, quoteID)
		active = true
		return err
	})
	return active, err
}

// ToggleFollow flips the follow from followerID to followingID and adjusts
// both users' counters. Returns whether the follow is active afterwards.
func (s *Store) ToggleFollow(ctx context.Context, followID, followerID, followingID string, now time.Time) (bool, error) {
	if followerID == followingID {
		return false, store.ErrInvalidInput.WithMessage("cannot follow yourself")
	}

	var active bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, followingID).Scan(&one); err != nil {
			return notFoundOr(err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`, followerID, followingID)
		if err != nil {
			return err
		}
		removed, err := result.RowsAffected()
		if err != nil {
			return err
		}

		delta := "+ 1"
		if removed > 0 {
			delta = "- 1"
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO follows (id, follower_id, following_id, created_at) VALUES (?, ?, ?, ?)`,
				followID, followerID, followingID, formatTime(now))
			if isForeignKeyViolation(err) {
				return store.ErrNotFound.WithMessage("user not found")
			}
			if err != nil {
				return err
			}
		}
		active = removed == 0

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET following_count = MAX(0, following_count `+delta+`) WHERE id = ?`, followerID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET followers_count = MAX(0, followers_count `+delta+`) WHERE id = ?`, followingID)
		return err
	})
	return active, err
}

// QuoteStatus reports whether userID currently likes and saves quoteID.
func (s *Store) QuoteStatus(ctx context.Context, userID, quoteID string) (domain.QuoteStatus, error) {
	var st domain.QuoteStatus
	err := s.db.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM likes WHERE user_id = ?1 AND quote_id = ?2),
			EXISTS(SELECT 1 FROM saves WHERE user_id = ?1 AND quote_id = ?2)`,
		userID, quoteID).Scan(&st.Liked, &st.Saved)
	return st, err
}

// IsFollowing reports whether followerID follows followingID.
func (s *Store) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var following bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = ? AND following_id = ?)`,
		followerID, followingID).Scan(&following)
	return following, err
}

// SavedQuotes returns the quotes userID has saved, most recently saved first.
func (s *Store) SavedQuotes(ctx context.Context, userID string, offset, limit int) ([]*domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.id, q.user_id, q.content, q.author, q.category_id, q.tags,
			q.likes_count, q.saves_count, q.views_count, q.shares_count, q.created_at
		FROM saves s JOIN quotes q ON q.id = s.quote_id
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC, s.rowid DESC
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectQuotes(rows)
}
