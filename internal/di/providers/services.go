package providers

import (
	"github.com/samber/do/v2"

	"github.com/quotevibe/quotevibe-server/internal/auth"
	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideNotificationService provides the notification feed service.
func ProvideNotificationService(i do.Injector) (*service.NotificationService, error) {
	feedHandle := do.MustInvoke[*FeedHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNotificationService(feedHandle.Store, storeHandle.Store, log.Logger), nil
}

// ProvideEngagementService provides the like, save, follow and view service.
func ProvideEngagementService(i do.Injector) (*service.EngagementService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifications := do.MustInvoke[*service.NotificationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEngagementService(storeHandle.Store, notifications, log.Logger), nil
}

// ProvideUserService provides the user profile service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	feedHandle := do.MustInvoke[*FeedHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(
		storeHandle.Store,
		feedHandle.Store,
		indexHandle.SearchIndex,
		cfg.StrictCascade(),
		log.Logger,
	), nil
}

// ProvideQuoteService provides the quote service.
func ProvideQuoteService(i do.Injector) (*service.QuoteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	engagement := do.MustInvoke[*service.EngagementService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQuoteService(storeHandle.Store, indexHandle.SearchIndex, engagement, log.Logger), nil
}

// ProvideCategoryService provides the category service.
func ProvideCategoryService(i do.Injector) (*service.CategoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCategoryService(storeHandle.Store, log.Logger), nil
}

// ProvideTrendingService provides the trending service.
func ProvideTrendingService(i do.Injector) (*service.TrendingService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTrendingService(storeHandle.Store, cfg.Ledger.TrendingLimit, log.Logger), nil
}

// ProvideRankingService provides the user ranking service.
func ProvideRankingService(i do.Injector) (*service.RankingService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRankingService(storeHandle.Store, cfg.Ledger.RankingStrategy, log.Logger), nil
}

// ProvideConversationService provides the direct message service.
func ProvideConversationService(i do.Injector) (*service.ConversationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifications := do.MustInvoke[*service.NotificationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewConversationService(storeHandle.Store, notifications, log.Logger), nil
}

// ProvideAdminService provides the admin service.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(storeHandle.Store, log.Logger), nil
}

// ProvideBlogService provides the blog service.
func ProvideBlogService(i do.Injector) (*service.BlogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBlogService(storeHandle.Store, log.Logger), nil
}

// ProvideHomeService provides the home feed service.
func ProvideHomeService(i do.Injector) (*service.HomeService, error) {
	trending := do.MustInvoke[*service.TrendingService](i)
	blogs := do.MustInvoke[*service.BlogService](i)

	return service.NewHomeService(trending, blogs), nil
}
