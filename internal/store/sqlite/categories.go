package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

const categoryColumns = `id, name, slug, description, parent_id, icon, quotes_count, created_at`

func scanCategory(row scanner) (*domain.Category, error) {
	var (
		c         domain.Category
		parentID  sql.NullString
		createdAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &parentID, &c.Icon, &c.QuotesCount, &createdAt)
	if err != nil {
		return nil, err
	}
	c.ParentID = parentID.String
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCategories(rows *sql.Rows) ([]*domain.Category, error) {
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a category. A taken slug returns store.ErrAlreadyExists;
// an unknown parent returns store.ErrNotFound.
func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, c.Description, nullString(c.ParentID), c.Icon, c.QuotesCount, formatTime(c.CreatedAt))
	switch {
	case isUniqueViolation(err):
		return store.ErrAlreadyExists
	case isForeignKeyViolation(err):
		return store.ErrNotFound.WithMessage("parent category not found")
	}
	return err
}

// GetCategory retrieves a category by ID.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

// GetCategoryBySlug retrieves a category by its unique slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)
	c, err := scanCategory(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

// ListCategories returns categories ordered by name. A non-empty parentID
// restricts the list to that parent's children.
func (s *Store) ListCategories(ctx context.Context, parentID string) ([]*domain.Category, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+categoryColumns+` FROM categories ORDER BY name, rowid`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+categoryColumns+` FROM categories WHERE parent_id = ? ORDER BY name, rowid`, parentID)
	}
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

// TopCategories orders categories created at or after since by quotes_count.
func (s *Store) TopCategories(ctx context.Context, since time.Time, limit int) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE created_at >= ?
		ORDER BY quotes_count DESC, rowid ASC
		LIMIT ?`, formatTime(since), limit)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}
