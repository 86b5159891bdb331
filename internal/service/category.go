package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
	"github.com/quotevibe/quotevibe-server/internal/util"
)

// CreateCategoryRequest is the input for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	ParentID    string `json:"parent_id"`
	Icon        string `json:"icon" validate:"max=50"`
}

// CategoryService manages categories.
type CategoryService struct {
	db     *sqlite.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewCategoryService creates a new category service.
func NewCategoryService(db *sqlite.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Create adds a category. Its slug is derived from the name and must be unique.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	slug := util.Slugify(req.Name)
	if slug == "" {
		return nil, domainerrors.Validation("name must contain letters or digits")
	}

	categoryID, err := id.Generate(id.PrefixCategory)
	if err != nil {
		return nil, fmt.Errorf("generate category id: %w", err)
	}

	c := &domain.Category{
		ID:          categoryID,
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		Icon:        req.Icon,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.db.CreateCategory(ctx, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("category %q already exists", slug)
		}
		return nil, mapStoreError(err, "category")
	}

	s.logger.Info("category created", "category_id", c.ID, "slug", c.Slug)
	return c, nil
}

// Get returns a category by ID.
func (s *CategoryService) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	c, err := s.db.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, mapStoreError(err, "category")
	}
	return c, nil
}

// List returns categories ordered by name, optionally only the children of parentID.
func (s *CategoryService) List(ctx context.Context, parentID string) ([]*domain.Category, error) {
	categories, err := s.db.ListCategories(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
