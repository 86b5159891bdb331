package api

import (
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/service"
	"github.com/quotevibe/quotevibe-server/internal/store"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth         *service.AuthService
	User         *service.UserService
	Quote        *service.QuoteService
	Category     *service.CategoryService
	Engagement   *service.EngagementService
	Trending     *service.TrendingService
	Ranking      *service.RankingService
	Conversation *service.ConversationService
	Notification *service.NotificationService
	Admin        *service.AdminService
	Blog         *service.BlogService
	Home         *service.HomeService
}

// Backends exposes the storage engines that health checks probe directly.
type Backends struct {
	Feed  *store.Store        // Notification feed (badger)
	Index *search.SearchIndex // Quote search index (bleve)
}
