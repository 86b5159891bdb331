package api

import (
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a limiter allowing perMinute requests per key per minute.
// A non-positive budget disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return nil
	}
	return ratelimit.PerMinute(perMinute)
}

// limitByIP is a huma middleware that rate limits an operation per client IP.
// chi's RealIP middleware has already resolved proxy headers into RemoteAddr.
func (s *Server) limitByIP(ctx huma.Context, next func(huma.Context)) {
	if s.authRateLimiter == nil {
		next(ctx)
		return
	}

	key := clientIP(ctx.RemoteAddr())
	if !s.authRateLimiter.Allow(key) {
		s.rejectRateLimited(ctx, "ip", key)
		return
	}

	next(ctx)
}

// limitByUser is a huma middleware that rate limits an operation per
// authenticated user. Anonymous requests pass through; the handler rejects them.
func (s *Server) limitByUser(ctx huma.Context, next func(huma.Context)) {
	userID := optionalUserID(ctx.Context())
	if s.engagementRateLimiter == nil || userID == "" {
		next(ctx)
		return
	}

	if !s.engagementRateLimiter.Allow(userID) {
		s.rejectRateLimited(ctx, "user_id", userID)
		return
	}

	next(ctx)
}

// rejectRateLimited writes a RATE_LIMITED error for the budget identified by attr=key.
func (s *Server) rejectRateLimited(ctx huma.Context, attr, key string) {
	s.logger.Warn("rate limit exceeded", attr, key, "path", ctx.URL().Path)
	_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests,
		"too many requests", domainerrors.ErrRateLimited)
}

// clientIP strips the port from a remote address.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
