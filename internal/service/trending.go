package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// DefaultTrendingLimit is the top-N used when none is configured.
const DefaultTrendingLimit = 5

// TrendingService produces top-N lists ordered by a single counter.
// Ties fall back to insertion order.
type TrendingService struct {
	db     *sqlite.Store
	limit  int
	logger *slog.Logger
	now    func() time.Time
}

// NewTrendingService creates a new trending service. A non-positive limit
// uses DefaultTrendingLimit.
func NewTrendingService(db *sqlite.Store, limit int, logger *slog.Logger) *TrendingService {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return &TrendingService{
		db:     db,
		limit:  limit,
		logger: logger,
		now:    time.Now,
	}
}

// GetTrending returns the trending list for kind. An empty window selects the
// kind's default: today for quotes, all time for categories and users.
func (s *TrendingService) GetTrending(ctx context.Context, kind domain.TrendingKind, window string) (*domain.Trending, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown trending kind %q", kind)
	}

	period := kind.DefaultWindow()
	if window != "" {
		period = domain.Period(window)
		if !period.Valid() {
			return nil, domainerrors.Validationf("unknown trending window %q", window)
		}
	}
	since := period.WindowStart(s.now())

	result := &domain.Trending{Kind: kind, Window: period}
	var err error
	switch kind {
	case domain.TrendingQuotes:
		result.Quotes, err = s.db.TopQuotes(ctx, domain.QuoteCounterViews, since, 0, s.limit)
	case domain.TrendingCategories:
		result.Categories, err = s.db.TopCategories(ctx, since, s.limit)
	case domain.TrendingUsers:
		result.Users, err = s.topUsersSince(ctx, since)
	}
	if err != nil {
		return nil, fmt.Errorf("trending %s: %w", kind, err)
	}
	return result, nil
}

// TodayQuotes returns today's most viewed quotes. The day starts at 00:00 UTC.
func (s *TrendingService) TodayQuotes(ctx context.Context) ([]*domain.Quote, error) {
	since := domain.PeriodDaily.WindowStart(s.now())
	quotes, err := s.db.TopQuotes(ctx, domain.QuoteCounterViews, since, 0, s.limit)
	if err != nil {
		return nil, fmt.Errorf("today's quotes: %w", err)
	}
	return quotes, nil
}

// MostQuotes pages through all quotes ordered by counter, descending.
func (s *TrendingService) MostQuotes(ctx context.Context, counter domain.QuoteCounter, offset, limit int) ([]*domain.Quote, error) {
	if !counter.Valid() {
		return nil, domainerrors.Validationf("unknown counter %q", counter)
	}
	offset, limit = domain.ClampPage(offset, limit)

	quotes, err := s.db.TopQuotes(ctx, counter, time.Time{}, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("most %s quotes: %w", counter, err)
	}
	return quotes, nil
}

// TopCategories returns the categories with the most quotes.
func (s *TrendingService) TopCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.db.TopCategories(ctx, time.Time{}, s.limit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	return categories, nil
}

// TopUsers returns the users with the most followers.
func (s *TrendingService) TopUsers(ctx context.Context) ([]domain.UserProfile, error) {
	profiles, err := s.topUsersSince(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("top users: %w", err)
	}
	return profiles, nil
}

func (s *TrendingService) topUsersSince(ctx context.Context, since time.Time) ([]domain.UserProfile, error) {
	users, err := s.db.TopUsers(ctx, since, s.limit)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.UserProfile, len(users))
	for i, u := range users {
		profiles[i] = u.Profile()
	}
	return profiles, nil
}
