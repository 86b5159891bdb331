package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

// quoteColumns must match the scan order in scanQuote.
const quoteColumns = `id, user_id, content, author, category_id, tags,
	likes_count, saves_count, views_count, shares_count, created_at`

func scanQuote(row scanner) (*domain.Quote, error) {
	var (
		q          domain.Quote
		categoryID sql.NullString
		tags       string
		createdAt  string
	)

	err := row.Scan(
		&q.ID,
		&q.UserID,
		&q.Content,
		&q.Author,
		&categoryID,
		&tags,
		&q.LikesCount,
		&q.SavesCount,
		&q.ViewsCount,
		&q.SharesCount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	q.CategoryID = categoryID.String
	if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of quote %s: %w", q.ID, err)
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &q, nil
}

func collectQuotes(rows *sql.Rows) ([]*domain.Quote, error) {
	defer rows.Close()

	quotes := make([]*domain.Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

// CreateQuote inserts a quote and bumps the author's and category's quotes_count
// in the same transaction. Counters on q are stored as given.
func (s *Store) CreateQuote(ctx context.Context, q *domain.Quote) error {
	tags, err := encodeTags(q.Tags)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quotes (`+quoteColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID,
			q.UserID,
			q.Content,
			q.Author,
			nullString(q.CategoryID),
			tags,
			q.LikesCount,
			q.SavesCount,
			q.ViewsCount,
			q.SharesCount,
			formatTime(q.CreatedAt),
		)
		switch {
		case isUniqueViolation(err):
			return store.ErrAlreadyExists
		case isForeignKeyViolation(err):
			return store.ErrNotFound.WithMessage("author or category not found")
		case err != nil:
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET quotes_count = quotes_count + 1 WHERE id = ?`, q.UserID); err != nil {
			return err
		}
		if q.CategoryID != "" {
			if _, err := tx.ExecContext(ctx,
				`UPDATE categories SET quotes_count = quotes_count + 1 WHERE id = ?`, q.CategoryID); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetQuote retrieves a quote by ID without touching its counters.
func (s *Store) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return q, nil
}

// IncrementViews adds one to a quote's views_count.
func (s *Store) IncrementViews(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE quotes SET views_count = views_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ListQuotes returns quotes matching the filter, newest first.
func (s *Store) ListQuotes(ctx context.Context, f domain.QuoteFilter) ([]*domain.Quote, error) {
	var (
		where []string
		args  []any
	)
	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}

	query := `SELECT ` + quoteColumns + ` FROM quotes`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`

	offset, limit := domain.ClampPage(f.Offset, f.Limit)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectQuotes(rows)
}

// ListAllQuotes returns every quote in insertion order.
func (s *Store) ListAllQuotes(ctx context.Context) ([]*domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	return collectQuotes(rows)
}

// GetQuotesByIDs returns the quotes found among ids in the order of ids.
// Missing IDs are skipped.
func (s *Store) GetQuotesByIDs(ctx context.Context, ids []string) ([]*domain.Quote, error) {
	if len(ids) == 0 {
		return []*domain.Quote{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	found, err := collectQuotes(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Quote, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	ordered := make([]*domain.Quote, 0, len(found))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// DeleteQuote removes a quote with its likes and saves, and decrements the
// author's and category's quotes_count.
func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var (
			userID     string
			categoryID sql.NullString
		)
		err := tx.QueryRowContext(ctx,
			`SELECT user_id, category_id FROM quotes WHERE id = ?`, id).Scan(&userID, &categoryID)
		if err != nil {
			return notFoundOr(err)
		}

		for _, stmt := range []string{
			`DELETE FROM likes WHERE quote_id = ?`,
			`DELETE FROM saves WHERE quote_id = ?`,
			`DELETE FROM quotes WHERE id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET quotes_count = MAX(0, quotes_count - 1) WHERE id = ?`, userID); err != nil {
			return err
		}
		if categoryID.Valid {
			if _, err := tx.ExecContext(ctx,
				`UPDATE categories SET quotes_count = MAX(0, quotes_count - 1) WHERE id = ?`, categoryID.String); err != nil {
				return err
			}
		}
		return nil
	})
}

// QuotesByAuthorSince returns a user's quotes created at or after since.
func (s *Store) QuotesByAuthorSince(ctx context.Context, userID string, since time.Time) ([]*domain.Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		WHERE user_id = ? AND created_at >= ?
		ORDER BY rowid`, userID, formatTime(since))
	if err != nil {
		return nil, err
	}
	return collectQuotes(rows)
}

// TopQuotes orders quotes created at or after since by a counter, descending,
// with insertion order breaking ties.
func (s *Store) TopQuotes(ctx context.Context, counter domain.QuoteCounter, since time.Time, offset, limit int) ([]*domain.Quote, error) {
	if !counter.Valid() {
		return nil, store.ErrInvalidInput.WithMessage("unknown quote counter")
	}

	// The column name comes from a closed set, never from input.
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+quoteColumns+` FROM quotes
		WHERE created_at >= ?
		ORDER BY `+counter.Column()+` DESC, rowid ASC
		LIMIT ? OFFSET ?`, formatTime(since), limit, offset)
	if err != nil {
		return nil, err
	}
	return collectQuotes(rows)
}
