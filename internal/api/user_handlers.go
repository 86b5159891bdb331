package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns every public profile in registration order",
		Tags:        []string{"Users"},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/me",
		Summary:     "Update profile",
		Description: "Updates the authenticated user's display name, bio or avatar",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSavedQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/saved",
		Summary:     "List saved quotes",
		Description: "Returns the quotes the authenticated user saved, most recent save first",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSavedQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns a user's public profile",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/quotes",
		Summary:     "List user quotes",
		Description: "Returns quotes posted by a user, newest first",
		Tags:        []string{"Users"},
	}, s.handleListUserQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFollow",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/follow",
		Summary:     "Follow or unfollow",
		Description: "Toggles whether the authenticated user follows the target user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{s.limitByUser},
	}, s.handleToggleFollow)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFollowStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/follow-status",
		Summary:     "Get follow status",
		Description: "Reports whether the authenticated user follows the target user",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetFollowStatus)
}

// === DTOs ===

// UserPathInput identifies a user by path.
type UserPathInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// UpdateProfileRequest is the request body for a profile update.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" doc:"Display name"`
	Bio      *string `json:"bio,omitempty" doc:"Short biography"`
	Avatar   *string `json:"avatar,omitempty" doc:"Avatar image URL"`
}

// UpdateProfileInput wraps the profile update for Huma.
type UpdateProfileInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateProfileRequest
}

// SavedQuotesInput contains pagination for saved quotes.
type SavedQuotesInput struct {
	Authorization string `header:"Authorization"`
	PageParams
}

// UserQuotesInput contains pagination for a user's quotes.
type UserQuotesInput struct {
	ID string `path:"id" doc:"User ID"`
	PageParams
}

// FollowResponse reports the follow state after a toggle or lookup.
type FollowResponse struct {
	Following bool `json:"following" doc:"Whether the caller now follows the user"`
}

// FollowOutput wraps the follow response for Huma.
type FollowOutput struct {
	Body FollowResponse
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*UserListOutput, error) {
	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &UserListOutput{Body: UserListResponse{Users: users}}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserPathInput) (*ProfileOutput, error) {
	profile, err := s.services.User.GetProfile(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *UpdateProfileInput) (*ProfileOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.User.UpdateProfile(ctx, userID, service.UpdateProfileRequest{
		FullName: input.Body.FullName,
		Bio:      input.Body.Bio,
		Avatar:   input.Body.Avatar,
	})
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleListSavedQuotes(ctx context.Context, input *SavedQuotesInput) (*QuoteListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	quotes, err := s.services.Engagement.SavedQuotes(ctx, userID, input.Offset, input.Limit)
	if err != nil {
		return nil, err
	}
	return &QuoteListOutput{Body: QuoteListResponse{Quotes: quotesOrEmpty(quotes)}}, nil
}

func (s *Server) handleListUserQuotes(ctx context.Context, input *UserQuotesInput) (*QuoteListOutput, error) {
	if _, err := s.services.User.GetProfile(ctx, input.ID); err != nil {
		return nil, err
	}

	quotes, err := s.services.Quote.List(ctx, service.ListQuotesParams{
		UserID: input.ID,
		Offset: input.Offset,
		Limit:  input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &QuoteListOutput{Body: QuoteListResponse{Quotes: quotesOrEmpty(quotes)}}, nil
}

func (s *Server) handleToggleFollow(ctx context.Context, input *UserPathInput) (*FollowOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	following, err := s.services.Engagement.ToggleFollow(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &FollowOutput{Body: FollowResponse{Following: following}}, nil
}

func (s *Server) handleGetFollowStatus(ctx context.Context, input *UserPathInput) (*FollowOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	following, err := s.services.Engagement.FollowStatus(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &FollowOutput{Body: FollowResponse{Following: following}}, nil
}
