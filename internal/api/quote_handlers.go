package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

func (s *Server) registerQuoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createQuote",
		Method:        http.MethodPost,
		Path:          "/api/v1/quotes",
		Summary:       "Create quote",
		Description:   "Posts a new quote as the authenticated user",
		Tags:          []string{"Quotes"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateQuote)

	huma.Register(s.api, huma.Operation{
		OperationID: "listQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/quotes",
		Summary:     "List quotes",
		Description: "Returns quotes newest first, optionally filtered by category, author or a search term",
		Tags:        []string{"Quotes"},
	}, s.handleListQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/quotes/search",
		Summary:     "Search quotes",
		Description: "Full-text search over quote content, author and tags",
		Tags:        []string{"Quotes"},
	}, s.handleSearchQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getQuote",
		Method:      http.MethodGet,
		Path:        "/api/v1/quotes/{id}",
		Summary:     "Get quote",
		Description: "Returns a quote and counts the fetch as a view",
		Tags:        []string{"Quotes"},
	}, s.handleGetQuote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteQuote",
		Method:      http.MethodDelete,
		Path:        "/api/v1/quotes/{id}",
		Summary:     "Delete quote",
		Description: "Deletes a quote. Only its author or an admin may do this.",
		Tags:        []string{"Quotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteQuote)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/quotes/{id}/like",
		Summary:     "Like or unlike",
		Description: "Toggles the authenticated user's like on a quote",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{s.limitByUser},
	}, s.handleToggleLike)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSave",
		Method:      http.MethodPost,
		Path:        "/api/v1/quotes/{id}/save",
		Summary:     "Save or unsave",
		Description: "Toggles whether the authenticated user saved a quote",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: huma.Middlewares{s.limitByUser},
	}, s.handleToggleSave)

	huma.Register(s.api, huma.Operation{
		OperationID: "getQuoteStatus",
		Method:      http.MethodGet,
		Path:        "/api/v1/quotes/{id}/status",
		Summary:     "Get quote status",
		Description: "Reports whether the authenticated user liked or saved a quote",
		Tags:        []string{"Engagement"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetQuoteStatus)
}

// === DTOs ===

// CreateQuoteRequest is the request body for posting a quote.
type CreateQuoteRequest struct {
	Content    string   `json:"content" doc:"Quote text"`
	Author     string   `json:"author,omitempty" doc:"Attributed author"`
	CategoryID string   `json:"category_id,omitempty" doc:"Category ID"`
	Tags       []string `json:"tags,omitempty" doc:"Free-form tags, normalized to slugs"`
}

// CreateQuoteInput wraps the create request for Huma.
type CreateQuoteInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateQuoteRequest
}

// QuoteOutput wraps a single quote for Huma.
type QuoteOutput struct {
	Body *domain.Quote
}

// ListQuotesInput contains filters for listing quotes.
type ListQuotesInput struct {
	CategoryID string `query:"category_id" doc:"Filter by category"`
	UserID     string `query:"user_id" doc:"Filter by poster"`
	Search     string `query:"search" doc:"Full-text search term"`
	PageParams
}

// SearchQuotesInput contains full-text search parameters.
type SearchQuotesInput struct {
	Query      string   `query:"q" doc:"Search text"`
	CategoryID string   `query:"category_id" doc:"Filter by category"`
	UserID     string   `query:"user_id" doc:"Filter by poster"`
	Tags       []string `query:"tags" doc:"Match any of these tags"`
	Sort       string   `query:"sort" enum:"relevance,recent,popular" default:"relevance" doc:"Result order"`
	Facets     bool     `query:"facets" doc:"Include tag facet counts"`
	PageParams
}

// SearchQuotesOutput wraps search results for Huma.
type SearchQuotesOutput struct {
	Body *service.QuoteSearchResult
}

// QuotePathInput identifies a quote by path.
type QuotePathInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Quote ID"`
}

// LikeResponse reports the like state after a toggle.
type LikeResponse struct {
	Liked bool `json:"liked" doc:"Whether the caller now likes the quote"`
}

// LikeOutput wraps the like response for Huma.
type LikeOutput struct {
	Body LikeResponse
}

// SaveResponse reports the save state after a toggle.
type SaveResponse struct {
	Saved bool `json:"saved" doc:"Whether the caller now has the quote saved"`
}

// SaveOutput wraps the save response for Huma.
type SaveOutput struct {
	Body SaveResponse
}

// QuoteStatusOutput wraps the viewer's relation to a quote.
type QuoteStatusOutput struct {
	Body domain.QuoteStatus
}

// === Handlers ===

func (s *Server) handleCreateQuote(ctx context.Context, input *CreateQuoteInput) (*QuoteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	q, err := s.services.Quote.Create(ctx, userID, service.CreateQuoteRequest{
		Content:    input.Body.Content,
		Author:     input.Body.Author,
		CategoryID: input.Body.CategoryID,
		Tags:       input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}
	return &QuoteOutput{Body: q}, nil
}

func (s *Server) handleListQuotes(ctx context.Context, input *ListQuotesInput) (*QuoteListOutput, error) {
	quotes, err := s.services.Quote.List(ctx, service.ListQuotesParams{
		CategoryID: input.CategoryID,
		UserID:     input.UserID,
		Search:     input.Search,
		Offset:     input.Offset,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &QuoteListOutput{Body: QuoteListResponse{Quotes: quotesOrEmpty(quotes)}}, nil
}

func (s *Server) handleSearchQuotes(ctx context.Context, input *SearchQuotesInput) (*SearchQuotesOutput, error) {
	res, err := s.services.Quote.Search(ctx, search.SearchParams{
		Query:         input.Query,
		CategoryID:    input.CategoryID,
		UserID:        input.UserID,
		Tags:          input.Tags,
		SortBy:        input.Sort,
		IncludeFacets: input.Facets,
		Offset:        input.Offset,
		Limit:         input.Limit,
	})
	if err != nil {
		return nil, err
	}
	res.Quotes = quotesOrEmpty(res.Quotes)
	return &SearchQuotesOutput{Body: res}, nil
}

func (s *Server) handleGetQuote(ctx context.Context, input *QuotePathInput) (*QuoteOutput, error) {
	q, err := s.services.Quote.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &QuoteOutput{Body: q}, nil
}

func (s *Server) handleDeleteQuote(ctx context.Context, input *QuotePathInput) (*MessageOutput, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Quote.Delete(ctx, user.ID, user.IsAdmin, input.ID); err != nil {
		return nil, err
	}
	return message("Quote deleted"), nil
}

func (s *Server) handleToggleLike(ctx context.Context, input *QuotePathInput) (*LikeOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	liked, err := s.services.Engagement.ToggleLike(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &LikeOutput{Body: LikeResponse{Liked: liked}}, nil
}

func (s *Server) handleToggleSave(ctx context.Context, input *QuotePathInput) (*SaveOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	saved, err := s.services.Engagement.ToggleSave(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &SaveOutput{Body: SaveResponse{Saved: saved}}, nil
}

func (s *Server) handleGetQuoteStatus(ctx context.Context, input *QuotePathInput) (*QuoteStatusOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	status, err := s.services.Engagement.QuoteStatus(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &QuoteStatusOutput{Body: status}, nil
}
