package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// testNow is the fixed clock used by services under test.
var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// testEnv bundles the stores a service test needs.
type testEnv struct {
	db     *sqlite.Store
	feed   *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := sqlite.Open(filepath.Join(dir, "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	feed, err := store.New("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { feed.Close() })

	index, err := search.NewSearchIndex(search.Options{DataPath: dir})
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })

	return &testEnv{
		db:     db,
		feed:   feed,
		index:  index,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *testEnv) notifications() *NotificationService {
	svc := NewNotificationService(e.feed, e.db, e.logger)
	svc.now = fixedClock
	return svc
}

func (e *testEnv) engagement() *EngagementService {
	svc := NewEngagementService(e.db, e.notifications(), e.logger)
	svc.now = fixedClock
	return svc
}

func (e *testEnv) createUser(t *testing.T, username string, admin bool) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           "user-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$test",
		IsAdmin:      admin,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, e.db.CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) createCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	c := &domain.Category{
		ID:        "cat-" + name,
		Name:      name,
		Slug:      name,
		CreatedAt: testNow,
	}
	require.NoError(t, e.db.CreateCategory(context.Background(), c))
	return c
}

// createQuote stores a quote with preset counters, bypassing the service.
func (e *testEnv) createQuote(t *testing.T, id, userID, categoryID string, at time.Time, views, likes, saves int64) *domain.Quote {
	t.Helper()
	q := &domain.Quote{
		ID:         id,
		UserID:     userID,
		Content:    "quote " + id,
		CategoryID: categoryID,
		Tags:       []string{},
		ViewsCount: views,
		LikesCount: likes,
		SavesCount: saves,
		CreatedAt:  at,
	}
	require.NoError(t, e.db.CreateQuote(context.Background(), q))
	return q
}

func (e *testEnv) quote(t *testing.T, id string) *domain.Quote {
	t.Helper()
	q, err := e.db.GetQuote(context.Background(), id)
	require.NoError(t, err)
	return q
}

func (e *testEnv) user(t *testing.T, id string) *domain.User {
	t.Helper()
	u, err := e.db.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}
