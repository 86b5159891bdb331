package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/stats",
		Summary:     "Get stats",
		Description: "Returns row counts for users, quotes, categories and messages (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminStats)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminAddBackground",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/backgrounds",
		Summary:       "Add background",
		Description:   "Adds a story or post background image URL (admin only)",
		Tags:          []string{"Admin"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminAddBackground)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteBackground",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/backgrounds/{id}",
		Summary:     "Delete background",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteBackground)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes a user and everything they created (admin only). Admins cannot delete themselves.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSetUserScore",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/users/{id}/score",
		Summary:     "Set user score",
		Description: "Sets a user's reputation score (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminSetUserScore)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminReconcileCounters",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reconcile",
		Summary:     "Reconcile counters",
		Description: "Recomputes every stored counter from the relation rows and reports how many drifted (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminReconcileCounters)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminSendNotification",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/notifications",
		Summary:       "Send system notification",
		Description:   "Sends a system notification to a user (admin only)",
		Tags:          []string{"Admin"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminSendNotification)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListBlogs",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/blogs",
		Summary:     "List all blogs",
		Description: "Returns blog posts including drafts (admin only)",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListBlogs)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateBlog",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/blogs",
		Summary:       "Create blog",
		Tags:          []string{"Admin"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminCreateBlog)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUpdateBlog",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/blogs/{id}",
		Summary:     "Update blog",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminUpdateBlog)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteBlog",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/blogs/{id}",
		Summary:     "Delete blog",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminDeleteBlog)
}

// === DTOs ===

// AdminPathInput identifies an entity by path for admin operations.
type AdminPathInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Entity ID"`
}

// AdminStatsOutput wraps the stats for Huma.
type AdminStatsOutput struct {
	Body *domain.AdminStats
}

// AddBackgroundRequest is the request body for adding a background.
type AddBackgroundRequest struct {
	Type string `json:"type" doc:"story or post"`
	URL  string `json:"url" doc:"Image URL"`
}

// AddBackgroundInput wraps the add request for Huma.
type AddBackgroundInput struct {
	Authorization string `header:"Authorization"`
	Body          AddBackgroundRequest
}

// BackgroundOutput wraps a single background for Huma.
type BackgroundOutput struct {
	Body *domain.Background
}

// SetScoreRequest is the request body for setting a user's score.
type SetScoreRequest struct {
	Score int64 `json:"score" doc:"New score (non-negative)"`
}

// SetScoreInput wraps the score request for Huma.
type SetScoreInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          SetScoreRequest
}

// ReconcileOutput wraps the reconcile report for Huma.
type ReconcileOutput struct {
	Body *domain.ReconcileReport
}

// SendNotificationRequest is the request body for a system notification.
type SendNotificationRequest struct {
	UserID string `json:"user_id" doc:"Recipient user ID"`
	Body   string `json:"body" doc:"Notification text"`
}

// SendNotificationInput wraps the notification request for Huma.
type SendNotificationInput struct {
	Authorization string `header:"Authorization"`
	Body          SendNotificationRequest
}

// NotificationOutput wraps a single notification for Huma.
type NotificationOutput struct {
	Body *domain.Notification
}

// AdminListBlogsInput contains pagination for the admin blog list.
type AdminListBlogsInput struct {
	Authorization string `header:"Authorization"`
	PageParams
}

// BlogRequest is the request body for creating or updating a blog post.
type BlogRequest struct {
	Title         string `json:"title" doc:"Title"`
	Content       string `json:"content" doc:"Body text"`
	Excerpt       string `json:"excerpt,omitempty" doc:"Short summary"`
	FeaturedImage string `json:"featured_image,omitempty" doc:"Featured image URL"`
	Published     *bool  `json:"published,omitempty" doc:"Whether the post is public (default true)"`
}

// CreateBlogInput wraps the create request for Huma.
type CreateBlogInput struct {
	Authorization string `header:"Authorization"`
	Body          BlogRequest
}

// UpdateBlogInput wraps the update request for Huma.
type UpdateBlogInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Blog ID"`
	Body          BlogRequest
}

// === Handlers ===

func (s *Server) handleAdminStats(ctx context.Context, _ *AuthInput) (*AdminStatsOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	stats, err := s.services.Admin.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStatsOutput{Body: stats}, nil
}

func (s *Server) handleAdminAddBackground(ctx context.Context, input *AddBackgroundInput) (*BackgroundOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	b, err := s.services.Admin.AddBackground(ctx, service.AddBackgroundRequest{
		Type: input.Body.Type,
		URL:  input.Body.URL,
	})
	if err != nil {
		return nil, err
	}
	return &BackgroundOutput{Body: b}, nil
}

func (s *Server) handleAdminDeleteBackground(ctx context.Context, input *AdminPathInput) (*MessageOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Admin.DeleteBackground(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Background deleted"), nil
}

func (s *Server) handleAdminDeleteUser(ctx context.Context, input *AdminPathInput) (*MessageOutput, error) {
	adminID, err := s.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.DeleteUser(ctx, adminID, input.ID); err != nil {
		return nil, err
	}
	return message("User deleted"), nil
}

func (s *Server) handleAdminSetUserScore(ctx context.Context, input *SetScoreInput) (*ProfileOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	profile, err := s.services.User.SetScore(ctx, input.ID, input.Body.Score)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleAdminReconcileCounters(ctx context.Context, _ *AuthInput) (*ReconcileOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	report, err := s.services.Engagement.ReconcileCounters(ctx)
	if err != nil {
		return nil, err
	}
	return &ReconcileOutput{Body: report}, nil
}

func (s *Server) handleAdminSendNotification(ctx context.Context, input *SendNotificationInput) (*NotificationOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	n, err := s.services.Notification.SendSystem(ctx, input.Body.UserID, input.Body.Body)
	if err != nil {
		return nil, err
	}
	return &NotificationOutput{Body: n}, nil
}

func (s *Server) handleAdminListBlogs(ctx context.Context, input *AdminListBlogsInput) (*BlogListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	blogs, err := s.services.Blog.List(ctx, false, input.Offset, input.Limit)
	if err != nil {
		return nil, err
	}
	return &BlogListOutput{Body: BlogListResponse{Blogs: blogsOrEmpty(blogs)}}, nil
}

func (s *Server) handleAdminCreateBlog(ctx context.Context, input *CreateBlogInput) (*BlogOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	b, err := s.services.Blog.Create(ctx, toBlogRequest(input.Body))
	if err != nil {
		return nil, err
	}
	return &BlogOutput{Body: b}, nil
}

func (s *Server) handleAdminUpdateBlog(ctx context.Context, input *UpdateBlogInput) (*BlogOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	b, err := s.services.Blog.Update(ctx, input.ID, toBlogRequest(input.Body))
	if err != nil {
		return nil, err
	}
	return &BlogOutput{Body: b}, nil
}

func (s *Server) handleAdminDeleteBlog(ctx context.Context, input *AdminPathInput) (*MessageOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Blog.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return message("Blog deleted"), nil
}

func toBlogRequest(r BlogRequest) service.BlogRequest {
	return service.BlogRequest{
		Title:         r.Title,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		FeaturedImage: r.FeaturedImage,
		Published:     r.Published,
	}
}
