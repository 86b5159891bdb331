package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/domain"
)

func newTestRankingService(env *testEnv, strategy string) *RankingService {
	svc := NewRankingService(env.db, strategy, env.logger)
	svc.now = fixedClock
	return svc
}

func entryFor(t *testing.T, r *domain.Ranking, userID string) domain.RankingEntry {
	t.Helper()
	for _, e := range r.Entries {
		if e.User.ID == userID {
			return e
		}
	}
	t.Fatalf("no ranking entry for %s", userID)
	return domain.RankingEntry{}
}

func TestRankingService_ScoreFormula(t *testing.T) {
	for _, strategy := range []string{config.RankingScan, config.RankingAggregate} {
		t.Run(strategy, func(t *testing.T) {
			env := newTestEnv(t)
			svc := newTestRankingService(env, strategy)

			alice := env.createUser(t, "alice", false)
			env.createQuote(t, "q1", alice.ID, "", testNow.Add(-time.Hour), 10, 3, 1)
			env.createQuote(t, "q2", alice.ID, "", testNow.Add(-2*time.Hour), 5, 0, 2)

			ranking, err := svc.GetRanking(context.Background(), "daily")
			require.NoError(t, err)

			e := entryFor(t, ranking, alice.ID)
			assert.Equal(t, int64(2), e.QuotesCount)
			assert.Equal(t, int64(15), e.TotalViews)
			assert.Equal(t, int64(3), e.TotalLikes)
			assert.Equal(t, int64(3), e.TotalSaves)
			assert.Equal(t, int64(74), e.Score)
		})
	}
}

func TestRankingService_WindowExcludesOlderQuotes(t *testing.T) {
	for _, strategy := range []string{config.RankingScan, config.RankingAggregate} {
		t.Run(strategy, func(t *testing.T) {
			env := newTestEnv(t)
			svc := newTestRankingService(env, strategy)

			alice := env.createUser(t, "alice", false)
			startOfDay := domain.PeriodDaily.WindowStart(testNow)
			// Huge lifetime counters, but created a second before the window.
			env.createQuote(t, "old", alice.ID, "", startOfDay.Add(-time.Second), 1000, 1000, 1000)
			env.createQuote(t, "new", alice.ID, "", startOfDay, 1, 0, 0)

			daily, err := svc.GetRanking(context.Background(), "daily")
			require.NoError(t, err)
			e := entryFor(t, daily, alice.ID)
			assert.Equal(t, int64(1), e.QuotesCount)
			assert.Equal(t, int64(11), e.Score)

			monthly, err := svc.GetRanking(context.Background(), "monthly")
			require.NoError(t, err)
			assert.Equal(t, int64(2), entryFor(t, monthly, alice.ID).QuotesCount)
		})
	}
}

func TestRankingService_UnknownPeriodFallsBackToDaily(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRankingService(env, config.RankingScan)

	alice := env.createUser(t, "alice", false)
	env.createQuote(t, "yesterday", alice.ID, "", testNow.Add(-24*time.Hour), 5, 5, 5)
	env.createQuote(t, "today", alice.ID, "", testNow, 1, 0, 0)

	for _, period := range []string{"", "weekly", "DAILY"} {
		ranking, err := svc.GetRanking(context.Background(), period)
		require.NoError(t, err)
		assert.Equal(t, domain.PeriodDaily, ranking.Period)
		assert.Equal(t, int64(11), entryFor(t, ranking, alice.ID).Score)
	}
}

func TestRankingService_OrderAndTies(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRankingService(env, config.RankingScan)

	first := env.createUser(t, "first", false)
	second := env.createUser(t, "second", false)
	top := env.createUser(t, "top", false)
	idle := env.createUser(t, "idle", false)

	env.createQuote(t, "q1", first.ID, "", testNow, 0, 0, 0)
	env.createQuote(t, "q2", second.ID, "", testNow, 0, 0, 0)
	env.createQuote(t, "q3", top.ID, "", testNow, 100, 0, 0)

	ranking, err := svc.GetRanking(context.Background(), "daily")
	require.NoError(t, err)

	ids := make([]string, len(ranking.Entries))
	for i, e := range ranking.Entries {
		ids[i] = e.User.ID
	}
	// Equal scores keep registration order; users without activity score zero.
	assert.Equal(t, []string{top.ID, first.ID, second.ID, idle.ID}, ids)
}

func TestRankingService_StrategiesAgree(t *testing.T) {
	env := newTestEnv(t)
	scan := newTestRankingService(env, config.RankingScan)
	aggregate := newTestRankingService(env, config.RankingAggregate)

	users := make([]*domain.User, 6)
	for i := range users {
		users[i] = env.createUser(t, fmt.Sprintf("user%d", i), false)
	}
	for i := range 20 {
		author := users[i%len(users)]
		at := testNow.Add(-time.Duration(i) * 7 * time.Hour)
		env.createQuote(t, fmt.Sprintf("q%02d", i), author.ID, "", at, int64(i%4), int64(i%3), int64(i%5))
	}

	for _, period := range []string{"daily", "monthly", "yearly"} {
		a, err := scan.GetRanking(context.Background(), period)
		require.NoError(t, err)
		b, err := aggregate.GetRanking(context.Background(), period)
		require.NoError(t, err)
		assert.Equal(t, a, b, period)
	}
}

func TestRankingService_CapsEntries(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRankingService(env, config.RankingAggregate)

	for i := range domain.MaxRankingEntries + 5 {
		env.createUser(t, fmt.Sprintf("user%02d", i), false)
	}

	ranking, err := svc.GetRanking(context.Background(), "yearly")
	require.NoError(t, err)
	assert.Len(t, ranking.Entries, domain.MaxRankingEntries)
	assert.Equal(t, "user-user00", ranking.Entries[0].User.ID)
}

func TestRankingService_StoreFailureIsReturned(t *testing.T) {
	for _, strategy := range []string{config.RankingScan, config.RankingAggregate} {
		t.Run(strategy, func(t *testing.T) {
			env := newTestEnv(t)
			svc := newTestRankingService(env, strategy)

			alice := env.createUser(t, "alice", false)
			env.createQuote(t, "q1", alice.ID, "", testNow.Add(-time.Hour), 1, 1, 1)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			ranking, err := svc.GetRanking(ctx, "daily")
			require.Error(t, err)
			assert.Nil(t, ranking)
		})
	}
}

func TestRankingService_ScanAbortsOnFailedFetch(t *testing.T) {
	env := newTestEnv(t)
	svc := newTestRankingService(env, config.RankingScan)

	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)
	env.createQuote(t, "q1", alice.ID, "", testNow.Add(-time.Hour), 1, 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	totals, err := svc.scanActivity(ctx, []*domain.User{alice, bob}, testNow.Add(-24*time.Hour))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, totals)
}
