package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

func TestCreateQuote_BumpsCounters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1")
	mustCreateCategory(t, s, "cat-1")

	q := mustCreateQuote(t, s, "user-1", "cat-1", testNow, 0, 0, 0)

	got, err := s.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("GetQuote: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "life" {
		t.Errorf("Tags: got %v", got.Tags)
	}

	u, _ := s.GetUser(ctx, "user-1")
	if u.QuotesCount != 1 {
		t.Errorf("user quotes_count: got %d", u.QuotesCount)
	}
	c, _ := s.GetCategory(ctx, "cat-1")
	if c.QuotesCount != 1 {
		t.Errorf("category quotes_count: got %d", c.QuotesCount)
	}
}

func TestCreateQuote_UnknownCategory(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "user-1")

	err := s.CreateQuote(context.Background(), &domain.Quote{
		ID: "quote-x", UserID: "user-1", Content: "x", CategoryID: "missing", CreatedAt: testNow,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	u, _ := s.GetUser(context.Background(), "user-1")
	if u.QuotesCount != 0 {
		t.Errorf("failed insert must not bump counters, got %d", u.QuotesCount)
	}
}

func TestDeleteQuote_DecrementsAndRemovesEngagement(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1")
	mustCreateUser(t, s, "user-2")
	mustCreateCategory(t, s, "cat-1")
	q := mustCreateQuote(t, s, "user-1", "cat-1", testNow, 0, 0, 0)

	if _, err := s.ToggleLike(ctx, "like-1", "user-2", q.ID, testNow); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if _, err := s.ToggleSave(ctx, "save-1", "user-2", q.ID, testNow); err != nil {
		t.Fatalf("ToggleSave: %v", err)
	}

	if err := s.DeleteQuote(ctx, q.ID); err != nil {
		t.Fatalf("DeleteQuote: %v", err)
	}

	if _, err := s.GetQuote(ctx, q.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	u, _ := s.GetUser(ctx, "user-1")
	c, _ := s.GetCategory(ctx, "cat-1")
	if u.QuotesCount != 0 || c.QuotesCount != 0 {
		t.Errorf("counters: user=%d category=%d", u.QuotesCount, c.QuotesCount)
	}

	saved, err := s.SavedQuotes(ctx, "user-2", 0, 10)
	if err != nil {
		t.Fatalf("SavedQuotes: %v", err)
	}
	if len(saved) != 0 {
		t.Errorf("saves should be removed, got %d", len(saved))
	}

	if err := s.DeleteQuote(ctx, q.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestIncrementViews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1")
	q := mustCreateQuote(t, s, "user-1", "", testNow, 0, 0, 0)

	for range 3 {
		if err := s.IncrementViews(ctx, q.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	got, _ := s.GetQuote(ctx, q.ID)
	if got.ViewsCount != 3 {
		t.Errorf("views_count: got %d", got.ViewsCount)
	}

	if err := s.IncrementViews(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListQuotes_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1")
	mustCreateUser(t, s, "user-2")
	mustCreateCategory(t, s, "cat-1")

	first := mustCreateQuote(t, s, "user-1", "cat-1", testNow.Add(-time.Hour), 0, 0, 0)
	second := mustCreateQuote(t, s, "user-1", "", testNow, 0, 0, 0)
	mustCreateQuote(t, s, "user-2", "cat-1", testNow, 0, 0, 0)

	byUser, err := s.ListQuotes(ctx, domain.QuoteFilter{UserID: "user-1"})
	if err != nil {
		t.Fatalf("ListQuotes: %v", err)
	}
	if len(byUser) != 2 || byUser[0].ID != second.ID || byUser[1].ID != first.ID {
		t.Errorf("expected newest first for user-1, got %v", quoteIDs(byUser))
	}

	byBoth, _ := s.ListQuotes(ctx, domain.QuoteFilter{UserID: "user-1", CategoryID: "cat-1"})
	if len(byBoth) != 1 || byBoth[0].ID != first.ID {
		t.Errorf("category filter: got %v", quoteIDs(byBoth))
	}

	page, _ := s.ListQuotes(ctx, domain.QuoteFilter{Offset: 1, Limit: 1})
	if len(page) != 1 {
		t.Errorf("paged: got %d", len(page))
	}
}

func TestTopQuotes_TieBreakByInsertion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1")

	a := mustCreateQuote(t, s, "user-1", "", testNow, 5, 0, 0)
	b := mustCreateQuote(t, s, "user-1", "", testNow, 9, 0, 0)
	c := mustCreateQuote(t, s, "user-1", "", testNow, 5, 0, 0)

	top, err := s.TopQuotes(ctx, domain.QuoteCounterViews, time.Time{}, 0, 10)
	if err != nil {
		t.Fatalf("TopQuotes: %v", err)
	}
	want := []string{b.ID, a.ID, c.ID}
	got := quoteIDs(top)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}

	if _, err := s.TopQuotes(ctx, domain.QuoteCounter("shares"), time.Time{}, 0, 10); !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTopQuotes_DailyBoundary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateUser(t, s, "user-1")

	start := domain.PeriodDaily.WindowStart(testNow)
	mustCreateQuote(t, s, "user-1", "", start.Add(-time.Second), 100, 0, 0)
	today := mustCreateQuote(t, s, "user-1", "", start, 1, 0, 0)

	top, err := s.TopQuotes(ctx, domain.QuoteCounterViews, start, 0, 5)
	if err != nil {
		t.Fatalf("TopQuotes: %v", err)
	}
	if len(top) != 1 || top[0].ID != today.ID {
		t.Errorf("expected only today's quote, got %v", quoteIDs(top))
	}
}

func TestGetQuotesByIDs_PreservesOrder(t *testing.T) {
	s := newTestStore(t)
	mustCreateUser(t, s, "user-1")
	a := mustCreateQuote(t, s, "user-1", "", testNow, 0, 0, 0)
	b := mustCreateQuote(t, s, "user-1", "", testNow, 0, 0, 0)

	got, err := s.GetQuotesByIDs(context.Background(), []string{b.ID, "missing", a.ID})
	if err != nil {
		t.Fatalf("GetQuotesByIDs: %v", err)
	}
	ids := quoteIDs(got)
	if len(ids) != 2 || ids[0] != b.ID || ids[1] != a.ID {
		t.Errorf("got %v", ids)
	}
}

func quoteIDs(quotes []*domain.Quote) []string {
	ids := make([]string, len(quotes))
	for i, q := range quotes {
		ids[i] = q.ID
	}
	return ids
}
