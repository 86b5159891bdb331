package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/quotevibe/quotevibe-server/internal/api"
	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	feedHandle := do.MustInvoke[*FeedHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:         do.MustInvoke[*service.AuthService](i),
		User:         do.MustInvoke[*service.UserService](i),
		Quote:        do.MustInvoke[*service.QuoteService](i),
		Category:     do.MustInvoke[*service.CategoryService](i),
		Engagement:   do.MustInvoke[*service.EngagementService](i),
		Trending:     do.MustInvoke[*service.TrendingService](i),
		Ranking:      do.MustInvoke[*service.RankingService](i),
		Conversation: do.MustInvoke[*service.ConversationService](i),
		Notification: do.MustInvoke[*service.NotificationService](i),
		Admin:        do.MustInvoke[*service.AdminService](i),
		Blog:         do.MustInvoke[*service.BlogService](i),
		Home:         do.MustInvoke[*service.HomeService](i),
	}

	backends := api.Backends{
		Feed:  feedHandle.Store,
		Index: indexHandle.SearchIndex,
	}

	handler := api.NewServer(storeHandle.Store, services, backends, cfg.RateLimit, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
