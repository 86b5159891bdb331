package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
	"github.com/quotevibe/quotevibe-server/internal/util"
)

// BlogRequest is the input for creating or updating a blog post.
// Published defaults to true when omitted.
type BlogRequest struct {
	Title         string `json:"title" validate:"required,notblank,max=200"`
	Content       string `json:"content" validate:"required,notblank"`
	Excerpt       string `json:"excerpt" validate:"max=500"`
	FeaturedImage string `json:"featured_image" validate:"omitempty,url,max=2048"`
	Published     *bool  `json:"published,omitempty"`
}

func (r BlogRequest) published() bool {
	return r.Published == nil || *r.Published
}

// BlogService manages editorial blog posts.
type BlogService struct {
	db     *sqlite.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewBlogService creates a new blog service.
func NewBlogService(db *sqlite.Store, logger *slog.Logger) *BlogService {
	return &BlogService{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Create adds a blog post. When the title's slug is taken, a short random
// suffix is appended.
func (s *BlogService) Create(ctx context.Context, req BlogRequest) (*domain.Blog, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	blogID, err := id.Generate(id.PrefixBlog)
	if err != nil {
		return nil, fmt.Errorf("generate blog id: %w", err)
	}

	now := s.now().UTC()
	b := &domain.Blog{
		ID:            blogID,
		Title:         strings.TrimSpace(req.Title),
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Published:     req.published(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.db.CreateBlog(ctx, b); err != nil {
		return nil, mapStoreError(err, "blog")
	}

	s.logger.Info("blog created", "blog_id", b.ID, "slug", b.Slug)
	return b, nil
}

// Update rewrites a blog post's content. The slug is kept.
func (s *BlogService) Update(ctx context.Context, blogID string, req BlogRequest) (*domain.Blog, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	b, err := s.db.GetBlog(ctx, blogID)
	if err != nil {
		return nil, mapStoreError(err, "blog")
	}

	b.Title = strings.TrimSpace(req.Title)
	b.Content = req.Content
	b.Excerpt = req.Excerpt
	b.FeaturedImage = req.FeaturedImage
	b.Published = req.published()
	b.UpdatedAt = s.now().UTC()

	if err := s.db.UpdateBlog(ctx, b); err != nil {
		return nil, mapStoreError(err, "blog")
	}
	return b, nil
}

// Delete removes a blog post.
func (s *BlogService) Delete(ctx context.Context, blogID string) error {
	return mapStoreError(s.db.DeleteBlog(ctx, blogID), "blog")
}

// Get returns a blog post by ID or slug.
func (s *BlogService) Get(ctx context.Context, idOrSlug string) (*domain.Blog, error) {
	b, err := s.db.GetBlog(ctx, idOrSlug)
	if err != nil {
		return nil, mapStoreError(err, "blog")
	}
	return b, nil
}

// List returns blog posts newest first.
func (s *BlogService) List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*domain.Blog, error) {
	offset, limit = domain.ClampPage(offset, limit)
	blogs, err := s.db.ListBlogs(ctx, publishedOnly, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (s *BlogService) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := util.Slugify(title)
	if slug == "" {
		return "", domainerrors.Validation("title must contain letters or digits")
	}

	exists, err := s.db.BlogSlugExists(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if exists {
		slug = slug + "-" + uuid.NewString()[:8]
	}
	return slug, nil
}
