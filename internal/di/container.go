// Package di provides dependency injection configuration for the QuoteVibe server.
package di

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/quotevibe/quotevibe-server/internal/auth"
	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/di/providers"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideFeed)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideNotificationService)
	do.Provide(injector, providers.ProvideEngagementService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideQuoteService)
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideTrendingService)
	do.Provide(injector, providers.ProvideRankingService)
	do.Provide(injector, providers.ProvideConversationService)
	do.Provide(injector, providers.ProvideAdminService)
	do.Provide(injector, providers.ProvideBlogService)
	do.Provide(injector, providers.ProvideHomeService)

	// Workers
	do.Provide(injector, providers.ProvideReconcileJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	cfg := do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.FeedHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// The admin must exist before the server accepts requests.
	authService := do.MustInvoke[*service.AuthService](injector)
	if err := authService.EnsureAdmin(context.Background(), cfg.Admin); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	// Workers
	_ = do.MustInvoke[*providers.ReconcileJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Trigger search reindex if needed
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
