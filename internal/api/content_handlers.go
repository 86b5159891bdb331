package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
)

func (s *Server) registerContentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBackgrounds",
		Method:      http.MethodGet,
		Path:        "/api/v1/backgrounds",
		Summary:     "List backgrounds",
		Description: "Returns share backgrounds, optionally only one type",
		Tags:        []string{"Content"},
	}, s.handleListBackgrounds)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBlogs",
		Method:      http.MethodGet,
		Path:        "/api/v1/blogs",
		Summary:     "List blogs",
		Description: "Returns published blog posts, newest first",
		Tags:        []string{"Content"},
	}, s.handleListBlogs)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBlog",
		Method:      http.MethodGet,
		Path:        "/api/v1/blogs/{idOrSlug}",
		Summary:     "Get blog",
		Description: "Returns a blog post by ID or slug. Drafts are visible to admins only.",
		Tags:        []string{"Content"},
	}, s.handleGetBlog)
}

// === DTOs ===

// ListBackgroundsInput filters backgrounds by type.
type ListBackgroundsInput struct {
	Type string `query:"type" doc:"story or post; empty for all"`
}

// BackgroundListResponse lists backgrounds.
type BackgroundListResponse struct {
	Backgrounds []*domain.Background `json:"backgrounds" doc:"Backgrounds, newest first"`
}

// BackgroundListOutput wraps the background list for Huma.
type BackgroundListOutput struct {
	Body BackgroundListResponse
}

// ListBlogsInput contains pagination for blogs.
type ListBlogsInput struct {
	PageParams
}

// BlogListResponse lists blog posts.
type BlogListResponse struct {
	Blogs []*domain.Blog `json:"blogs" doc:"Blog posts, newest first"`
}

// BlogListOutput wraps the blog list for Huma.
type BlogListOutput struct {
	Body BlogListResponse
}

// BlogPathInput identifies a blog by ID or slug.
type BlogPathInput struct {
	IDOrSlug string `path:"idOrSlug" doc:"Blog ID or slug"`
}

// BlogOutput wraps a single blog post for Huma.
type BlogOutput struct {
	Body *domain.Blog
}

// === Handlers ===

func (s *Server) handleListBackgrounds(ctx context.Context, input *ListBackgroundsInput) (*BackgroundListOutput, error) {
	backgrounds, err := s.services.Admin.ListBackgrounds(ctx, input.Type)
	if err != nil {
		return nil, err
	}
	if backgrounds == nil {
		backgrounds = []*domain.Background{}
	}
	return &BackgroundListOutput{Body: BackgroundListResponse{Backgrounds: backgrounds}}, nil
}

func (s *Server) handleListBlogs(ctx context.Context, input *ListBlogsInput) (*BlogListOutput, error) {
	blogs, err := s.services.Blog.List(ctx, true, input.Offset, input.Limit)
	if err != nil {
		return nil, err
	}
	return &BlogListOutput{Body: BlogListResponse{Blogs: blogsOrEmpty(blogs)}}, nil
}

func (s *Server) handleGetBlog(ctx context.Context, input *BlogPathInput) (*BlogOutput, error) {
	b, err := s.services.Blog.Get(ctx, input.IDOrSlug)
	if err != nil {
		return nil, err
	}

	if !b.Published {
		if _, err := s.RequireAdmin(ctx); err != nil {
			return nil, domainerrors.NotFound("blog not found")
		}
	}
	return &BlogOutput{Body: b}, nil
}

func blogsOrEmpty(blogs []*domain.Blog) []*domain.Blog {
	if blogs == nil {
		return []*domain.Blog{}
	}
	return blogs
}
