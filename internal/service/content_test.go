package service

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
)

func TestCategoryService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCategoryService(env.db, env.logger)
	svc.now = fixedClock
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateCategoryRequest{Name: "Güzel Sözler", Icon: "sparkles"})
	require.NoError(t, err)
	assert.Equal(t, "guzel-sozler", parent.Slug)

	child, err := svc.Create(ctx, CreateCategoryRequest{Name: "Aşk", ParentID: parent.ID})
	require.NoError(t, err)
	assert.Equal(t, "ask", child.Slug)

	_, err = svc.Create(ctx, CreateCategoryRequest{Name: "güzel  sözler"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = svc.Create(ctx, CreateCategoryRequest{Name: "Orphan", ParentID: "cat-missing"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.Create(ctx, CreateCategoryRequest{Name: "!!!"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	children, err := svc.List(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, child.ID, children[0].ID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := svc.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aşk", got.Name)

	_, err = svc.Get(ctx, "cat-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAdminService_Backgrounds(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAdminService(env.db, env.logger)
	svc.now = fixedClock
	ctx := context.Background()

	story, err := svc.AddBackground(ctx, AddBackgroundRequest{Type: "story", URL: "https://cdn.example.com/a.jpg"})
	require.NoError(t, err)
	_, err = svc.AddBackground(ctx, AddBackgroundRequest{Type: "post", URL: "https://cdn.example.com/b.jpg"})
	require.NoError(t, err)

	_, err = svc.AddBackground(ctx, AddBackgroundRequest{Type: "banner", URL: "https://cdn.example.com/c.jpg"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	_, err = svc.AddBackground(ctx, AddBackgroundRequest{Type: "post", URL: "not a url"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	stories, err := svc.ListBackgrounds(ctx, "story")
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, story.ID, stories[0].ID)

	all, err := svc.ListBackgrounds(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListBackgrounds(ctx, "banner")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, svc.DeleteBackground(ctx, story.ID))
	assert.ErrorIs(t, svc.DeleteBackground(ctx, story.ID), domainerrors.ErrNotFound)
}

func TestAdminService_Stats(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAdminService(env.db, env.logger)
	ctx := context.Background()

	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)
	env.createCategory(t, "life")
	env.createQuote(t, "q1", alice.ID, "", testNow, 0, 0, 0)
	_, err := newTestConversationService(env).SendMessage(ctx, alice.ID, bob.ID, "hi")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminStats{UsersCount: 2, QuotesCount: 1, CategoriesCount: 1, MessagesCount: 1}, *stats)
}

func TestBlogService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBlogService(env.db, env.logger)
	svc.now = fixedClock
	ctx := context.Background()

	first, err := svc.Create(ctx, BlogRequest{Title: "Why We Quote", Content: "Because."})
	require.NoError(t, err)
	assert.Equal(t, "why-we-quote", first.Slug)
	assert.True(t, first.Published)

	second, err := svc.Create(ctx, BlogRequest{Title: "Why we quote!", Content: "Again."})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^why-we-quote-[0-9a-f]{8}$`), second.Slug)

	bySlug, err := svc.Get(ctx, "why-we-quote")
	require.NoError(t, err)
	assert.Equal(t, first.ID, bySlug.ID)

	draft := false
	svc.now = func() time.Time { return testNow.Add(time.Hour) }
	updated, err := svc.Update(ctx, first.ID, BlogRequest{Title: "Renamed", Content: "Changed.", Published: &draft})
	require.NoError(t, err)
	assert.Equal(t, "why-we-quote", updated.Slug)
	assert.False(t, updated.Published)
	assert.Equal(t, testNow.Add(time.Hour), updated.UpdatedAt)

	published, err := svc.List(ctx, true, 0, 0)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, second.ID, published[0].ID)

	all, err := svc.List(ctx, false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Create(ctx, BlogRequest{Title: "   ", Content: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), domainerrors.ErrNotFound)
	_, err = svc.Update(ctx, first.ID, BlogRequest{Title: "x", Content: "y"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestHomeService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	trending := newTestTrendingService(env, 5)
	blogs := NewBlogService(env.db, env.logger)
	svc := NewHomeService(trending, blogs)

	alice := env.createUser(t, "alice", false)
	life := env.createCategory(t, "life")
	env.createQuote(t, "today", alice.ID, life.ID, testNow, 1, 0, 0)
	env.createQuote(t, "old", alice.ID, life.ID, testNow.AddDate(0, 0, -3), 99, 0, 0)

	for i := range domain.RecentBlogsOnHome + 2 {
		blogs.now = func() time.Time { return testNow.Add(time.Duration(i) * time.Minute) }
		_, err := blogs.Create(ctx, BlogRequest{Title: fmt.Sprintf("Post %d", i), Content: "body"})
		require.NoError(t, err)
	}

	home, err := svc.Home(ctx)
	require.NoError(t, err)

	require.Len(t, home.TrendingQuotes, 1)
	assert.Equal(t, "today", home.TrendingQuotes[0].ID)
	require.Len(t, home.TrendingCategories, 1)
	assert.Equal(t, int64(2), home.TrendingCategories[0].QuotesCount)
	require.Len(t, home.TrendingUsers, 1)
	require.Len(t, home.RecentBlogs, domain.RecentBlogsOnHome)
	assert.Equal(t, "Post 5", home.RecentBlogs[0].Title)
}
