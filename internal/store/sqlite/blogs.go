package sqlite

import (
	"context"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

const blogColumns = `id, title, slug, content, excerpt, featured_image, published, created_at, updated_at`

func scanBlog(row scanner) (*domain.Blog, error) {
	var (
		b         domain.Blog
		published int
		createdAt string
		updatedAt string
	)
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt, &b.FeaturedImage,
		&published, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.Published = published != 0
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBlog inserts a blog post. A taken slug returns store.ErrAlreadyExists.
func (s *Store) CreateBlog(ctx context.Context, b *domain.Blog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blogs (`+blogColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Slug, b.Content, b.Excerpt, b.FeaturedImage,
		boolToInt(b.Published), formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// UpdateBlog rewrites every mutable field of a blog post.
func (s *Store) UpdateBlog(ctx context.Context, b *domain.Blog) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE blogs SET title = ?, slug = ?, content = ?, excerpt = ?, featured_image = ?,
			published = ?, updated_at = ?
		WHERE id = ?`,
		b.Title, b.Slug, b.Content, b.Excerpt, b.FeaturedImage,
		boolToInt(b.Published), formatTime(b.UpdatedAt), b.ID)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// GetBlog retrieves a blog post by ID or slug.
func (s *Store) GetBlog(ctx context.Context, idOrSlug string) (*domain.Blog, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = ?1 OR slug = ?1`, idOrSlug)
	b, err := scanBlog(row)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return b, nil
}

// BlogSlugExists reports whether slug is taken.
func (s *Store) BlogSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM blogs WHERE slug = ?)`, slug).Scan(&exists)
	return exists, err
}

// ListBlogs returns blog posts newest first. With publishedOnly drafts are skipped.
func (s *Store) ListBlogs(ctx context.Context, publishedOnly bool, offset, limit int) ([]*domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs`
	if publishedOnly {
		query += ` WHERE published = 1`
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]*domain.Blog, 0)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// DeleteBlog removes a blog post.
func (s *Store) DeleteBlog(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
