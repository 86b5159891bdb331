package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

// mustCreateUser inserts a user with the given ID and derived credentials.
func mustCreateUser(t *testing.T, s *Store, id string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           id,
		Username:     id,
		Email:        id + "@example.com",
		PasswordHash: "$argon2id$test",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", id, err)
	}
	return u
}

func mustCreateCategory(t *testing.T, s *Store, id string) *domain.Category {
	t.Helper()
	c := &domain.Category{ID: id, Name: id, Slug: id, CreatedAt: testNow}
	if err := s.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("CreateCategory(%s): %v", id, err)
	}
	return c
}

var quoteSeq int

// mustCreateQuote inserts a quote with preset counters.
func mustCreateQuote(t *testing.T, s *Store, userID, categoryID string, at time.Time, views, likes, saves int64) *domain.Quote {
	t.Helper()
	quoteSeq++
	q := &domain.Quote{
		ID:         fmt.Sprintf("quote-%d", quoteSeq),
		UserID:     userID,
		Content:    "content",
		CategoryID: categoryID,
		Tags:       []string{"life"},
		ViewsCount: views,
		LikesCount: likes,
		SavesCount: saves,
		CreatedAt:  at,
	}
	if err := s.CreateQuote(context.Background(), q); err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}
	return q
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	tables := []string{
		"users", "categories", "quotes", "likes", "saves", "follows",
		"messages", "backgrounds", "blogs",
	}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	s1, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s1.Close()

	s2, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s2.Close()
}

func TestFormatTime_LexicalOrder(t *testing.T) {
	whole := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	frac := whole.Add(500 * time.Millisecond)

	if !(formatTime(whole) < formatTime(frac)) {
		t.Errorf("expected %q < %q", formatTime(whole), formatTime(frac))
	}

	parsed, err := parseTime(formatTime(frac))
	if err != nil {
		t.Fatalf("parseTime: %v", err)
	}
	if !parsed.Equal(frac) {
		t.Errorf("round trip: got %v, want %v", parsed, frac)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "user-a")
	mustCreateUser(t, s, "user-b")
	mustCreateCategory(t, s, "cat-1")
	mustCreateQuote(t, s, "user-a", "cat-1", testNow, 0, 0, 0)

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.UsersCount != 2 || st.QuotesCount != 1 || st.CategoriesCount != 1 || st.MessagesCount != 0 {
		t.Errorf("unexpected stats: %+v", st)
	}
}
