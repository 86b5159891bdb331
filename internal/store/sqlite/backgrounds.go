package sqlite

import (
	"context"
	"database/sql"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

// CreateBackground stores a background image reference.
func (s *Store) CreateBackground(ctx context.Context, b *domain.Background) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO backgrounds (id, type, url, created_at) VALUES (?, ?, ?, ?)`,
		b.ID, string(b.Type), b.URL, formatTime(b.CreatedAt))
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// ListBackgrounds returns backgrounds newest first, optionally filtered by type.
func (s *Store) ListBackgrounds(ctx context.Context, typ domain.BackgroundType) ([]*domain.Background, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if typ == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, type, url, created_at FROM backgrounds ORDER BY created_at DESC, rowid DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, type, url, created_at FROM backgrounds WHERE type = ? ORDER BY created_at DESC, rowid DESC`,
			string(typ))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	backgrounds := make([]*domain.Background, 0)
	for rows.Next() {
		var (
			b         domain.Background
			typ       string
			createdAt string
		)
		if err := rows.Scan(&b.ID, &typ, &b.URL, &createdAt); err != nil {
			return nil, err
		}
		b.Type = domain.BackgroundType(typ)
		if b.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		backgrounds = append(backgrounds, &b)
	}
	return backgrounds, rows.Err()
}

// DeleteBackground removes a background by ID.
func (s *Store) DeleteBackground(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM backgrounds WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
