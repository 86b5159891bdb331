package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

type ctxKey struct{}

// principal is the caller identified by a verified bearer token.
type principal struct {
	userID string
	admin  bool
}

func withPrincipal(ctx context.Context, p principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func principalFrom(ctx context.Context) (principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(principal)
	return p, ok && p.userID != ""
}

// GetUserID returns the authenticated user ID, or a 401 for anonymous requests.
func GetUserID(ctx context.Context) (string, error) {
	p, ok := principalFrom(ctx)
	if !ok {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return p.userID, nil
}

// optionalUserID returns the authenticated user ID or "".
func optionalUserID(ctx context.Context) string {
	p, _ := principalFrom(ctx)
	return p.userID
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return strings.TrimSpace(token), ok && strings.TrimSpace(token) != ""
}

// authMiddleware attaches the caller to the request context when a valid
// bearer token is present. Requests without one, or with a bad one, pass
// through anonymously and protected handlers reject them via GetUserID.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, _, err := auth.VerifyAccessToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := withPrincipal(r.Context(), principal{userID: user.ID, admin: user.IsAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser loads the authenticated user. A token whose user has since
// been deleted is treated as unauthenticated.
func (s *Server) RequireUser(ctx context.Context) (*domain.User, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}
	return user, nil
}

// RequireAdmin returns the caller's ID when the caller is an administrator.
func (s *Server) RequireAdmin(ctx context.Context) (string, error) {
	if p, ok := principalFrom(ctx); ok && !p.admin {
		return "", domainerrors.Forbidden("Admin access required")
	}

	user, err := s.RequireUser(ctx)
	if err != nil {
		return "", err
	}
	if !user.IsAdmin {
		return "", domainerrors.Forbidden("Admin access required")
	}
	return user.ID, nil
}
