package api

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/quotevibe/quotevibe-server/internal/auth"
	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/service"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// testKeyHex is a fixed 32-byte PASETO key for tests.
const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testAdmin is the bootstrap admin created by every test server.
var testAdmin = config.AdminConfig{
	Username: "admin",
	Email:    "admin@example.com",
	Password: "admin-password",
}

// testEnvelope decodes the response envelope with typed data.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// testServer wraps the API server with a huma test client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server backed by real stores in a temp dir.
// Rate limiting is disabled unless limits say otherwise.
func setupTestServer(t *testing.T, limits ...config.RateLimitConfig) *testServer {
	t.Helper()

	dir := t.TempDir()
	log := logger.Discard()

	db, err := sqlite.Open(filepath.Join(dir, "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	feed, err := store.New("", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Close() })

	index, err := search.NewSearchIndex(search.Options{DataPath: dir, Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	notifications := service.NewNotificationService(feed, db, log)
	engagement := service.NewEngagementService(db, notifications, log)
	trending := service.NewTrendingService(db, 5, log)
	blogs := service.NewBlogService(db, log)

	services := &Services{
		Auth:         service.NewAuthService(db, tokenService, log),
		User:         service.NewUserService(db, feed, index, false, log),
		Quote:        service.NewQuoteService(db, index, engagement, log),
		Category:     service.NewCategoryService(db, log),
		Engagement:   engagement,
		Trending:     trending,
		Ranking:      service.NewRankingService(db, config.RankingScan, log),
		Conversation: service.NewConversationService(db, notifications, log),
		Notification: notifications,
		Admin:        service.NewAdminService(db, log),
		Blog:         blogs,
		Home:         service.NewHomeService(trending, blogs),
	}

	ctx := context.Background()
	require.NoError(t, services.Auth.EnsureAdmin(ctx, testAdmin))
	require.NoError(t, services.Quote.ReindexIfNeeded(ctx))

	var rl config.RateLimitConfig
	if len(limits) > 0 {
		rl = limits[0]
	}

	s := NewServer(db, services, Backends{Feed: feed, Index: index}, rl, log)
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// decode unmarshals a response body into an envelope.
func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

// register creates an account through the API and returns the auth payload.
func (ts *testServer) register(t *testing.T, username string) AuthResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	return decode[AuthResponse](t, resp.Body.Bytes()).Data
}

// adminToken logs in as the bootstrap admin.
func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    testAdmin.Email,
		"password": testAdmin.Password,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	return decode[AuthResponse](t, resp.Body.Bytes()).Data.AccessToken
}

// createQuote posts a quote as the token's owner and returns its ID.
func (ts *testServer) createQuote(t *testing.T, token, content string, tags ...string) string {
	t.Helper()

	body := map[string]any{"content": content}
	if len(tags) > 0 {
		body["tags"] = tags
	}
	resp := ts.api.Post("/api/v1/quotes", bearer(token), body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	env := decode[struct {
		ID string `json:"id"`
	}](t, resp.Body.Bytes())
	require.NotEmpty(t, env.Data.ID)
	return env.Data.ID
}
