package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// AddBackgroundRequest is the input for adding a background image.
type AddBackgroundRequest struct {
	Type string `json:"type" validate:"required"`
	URL  string `json:"url" validate:"required,url,max=2048"`
}

// AdminService provides admin dashboards and background management.
type AdminService struct {
	db     *sqlite.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAdminService creates a new admin service.
func NewAdminService(db *sqlite.Store, logger *slog.Logger) *AdminService {
	return &AdminService{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Stats returns raw entity counts.
func (s *AdminService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	stats, err := s.db.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return stats, nil
}

// AddBackground registers a background image URL. Type must be story or post.
func (s *AdminService) AddBackground(ctx context.Context, req AddBackgroundRequest) (*domain.Background, error) {
	typ := domain.BackgroundType(req.Type)
	if !typ.Valid() {
		return nil, domainerrors.Validationf("type must be %q or %q", domain.BackgroundStory, domain.BackgroundPost)
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	backgroundID, err := id.Generate(id.PrefixBackground)
	if err != nil {
		return nil, fmt.Errorf("generate background id: %w", err)
	}

	bg := &domain.Background{
		ID:        backgroundID,
		Type:      typ,
		URL:       req.URL,
		CreatedAt: s.now().UTC(),
	}
	if err := s.db.CreateBackground(ctx, bg); err != nil {
		return nil, mapStoreError(err, "background")
	}
	return bg, nil
}

// ListBackgrounds returns backgrounds, optionally of one type only.
func (s *AdminService) ListBackgrounds(ctx context.Context, typ string) ([]*domain.Background, error) {
	t := domain.BackgroundType(typ)
	if typ != "" && !t.Valid() {
		return nil, domainerrors.Validationf("type must be %q or %q", domain.BackgroundStory, domain.BackgroundPost)
	}

	backgrounds, err := s.db.ListBackgrounds(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list backgrounds: %w", err)
	}
	return backgrounds, nil
}

// DeleteBackground removes a background image.
func (s *AdminService) DeleteBackground(ctx context.Context, backgroundID string) error {
	return mapStoreError(s.db.DeleteBackground(ctx, backgroundID), "background")
}
