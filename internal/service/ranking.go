package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// RankingService computes period leaderboards from raw quote rows.
// Stored counters are lifetime totals, so they are never used here.
type RankingService struct {
	db       *sqlite.Store
	strategy string
	weights  domain.ScoreWeights
	logger   *slog.Logger
	now      func() time.Time
}

// NewRankingService creates a new ranking service. strategy is
// config.RankingScan or config.RankingAggregate; anything else scans.
func NewRankingService(db *sqlite.Store, strategy string, logger *slog.Logger) *RankingService {
	return &RankingService{
		db:       db,
		strategy: strategy,
		weights:  domain.DefaultScoreWeights,
		logger:   logger,
		now:      time.Now,
	}
}

// GetRanking returns up to domain.MaxRankingEntries users ordered by score
// for the period. Unknown periods fall back to daily. Equal scores keep user
// registration order.
func (s *RankingService) GetRanking(ctx context.Context, period string) (*domain.Ranking, error) {
	p := domain.ParseRankingPeriod(period)
	since := p.WindowStart(s.now())

	users, err := s.db.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var totals map[string]domain.ActivityTotals
	if s.strategy == config.RankingAggregate {
		totals, err = s.db.AggregateActivitySince(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("aggregating activity: %w", err)
		}
	} else {
		totals, err = s.scanActivity(ctx, users, since)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]domain.RankingEntry, 0, len(users))
	for _, u := range users {
		t := totals[u.ID]
		entries = append(entries, domain.RankingEntry{
			User:           u.Profile(),
			ActivityTotals: t,
			Score:          t.Score(s.weights),
		})
	}

	slices.SortStableFunc(entries, func(a, b domain.RankingEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(entries) > domain.MaxRankingEntries {
		entries = entries[:domain.MaxRankingEntries]
	}

	s.logger.Debug("ranking computed", "period", p, "strategy", s.strategy, "entries", len(entries))
	return &domain.Ranking{Period: p, Entries: entries}, nil
}

// scanActivity fetches each user's in-window quotes with one query per user.
// The first failed fetch aborts the scan, matching the aggregate query.
func (s *RankingService) scanActivity(ctx context.Context, users []*domain.User, since time.Time) (map[string]domain.ActivityTotals, error) {
	totals := make(map[string]domain.ActivityTotals, len(users))
	for _, u := range users {
		quotes, err := s.db.QuotesByAuthorSince(ctx, u.ID, since)
		if err != nil {
			return nil, fmt.Errorf("scanning activity for %s: %w", u.ID, err)
		}

		var t domain.ActivityTotals
		for _, q := range quotes {
			t.Add(q)
		}
		totals[u.ID] = t
	}
	return totals, nil
}
