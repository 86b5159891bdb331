package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns categories by name, optionally only the children of a parent",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Get category",
		Tags:        []string{"Categories"},
	}, s.handleGetCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategoryQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}/quotes",
		Summary:     "List category quotes",
		Description: "Returns quotes in a category, newest first",
		Tags:        []string{"Categories"},
	}, s.handleListCategoryQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCategory",
		Method:        http.MethodPost,
		Path:          "/api/v1/categories",
		Summary:       "Create category",
		Description:   "Creates a category (admin only). The slug is derived from the name and must be unique.",
		Tags:          []string{"Categories"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCategory)
}

// === DTOs ===

// ListCategoriesInput filters the category listing.
type ListCategoriesInput struct {
	ParentID string `query:"parent_id" doc:"Only children of this category"`
}

// CategoryListResponse is a list of categories.
type CategoryListResponse struct {
	Categories []*domain.Category `json:"categories" doc:"Categories"`
}

// CategoryListOutput wraps the category list for Huma.
type CategoryListOutput struct {
	Body CategoryListResponse
}

// CategoryPathInput identifies a category by path.
type CategoryPathInput struct {
	ID string `path:"id" doc:"Category ID"`
}

// CategoryQuotesInput contains pagination for a category's quotes.
type CategoryQuotesInput struct {
	ID string `path:"id" doc:"Category ID"`
	PageParams
}

// CategoryOutput wraps a single category for Huma.
type CategoryOutput struct {
	Body *domain.Category
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" doc:"Display name"`
	Description string `json:"description,omitempty" doc:"Description"`
	ParentID    string `json:"parent_id,omitempty" doc:"Parent category ID"`
	Icon        string `json:"icon,omitempty" doc:"Icon name"`
}

// CreateCategoryInput wraps the create request for Huma.
type CreateCategoryInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateCategoryRequest
}

// === Handlers ===

func (s *Server) handleListCategories(ctx context.Context, input *ListCategoriesInput) (*CategoryListOutput, error) {
	categories, err := s.services.Category.List(ctx, input.ParentID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return &CategoryListOutput{Body: CategoryListResponse{Categories: categories}}, nil
}

func (s *Server) handleGetCategory(ctx context.Context, input *CategoryPathInput) (*CategoryOutput, error) {
	c, err := s.services.Category.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryOutput{Body: c}, nil
}

func (s *Server) handleListCategoryQuotes(ctx context.Context, input *CategoryQuotesInput) (*QuoteListOutput, error) {
	if _, err := s.services.Category.Get(ctx, input.ID); err != nil {
		return nil, err
	}

	quotes, err := s.services.Quote.List(ctx, service.ListQuotesParams{
		CategoryID: input.ID,
		Offset:     input.Offset,
		Limit:      input.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &QuoteListOutput{Body: QuoteListResponse{Quotes: quotesOrEmpty(quotes)}}, nil
}

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	c, err := s.services.Category.Create(ctx, service.CreateCategoryRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		ParentID:    input.Body.ParentID,
		Icon:        input.Body.Icon,
	})
	if err != nil {
		return nil, err
	}
	return &CategoryOutput{Body: c}, nil
}
