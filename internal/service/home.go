package service

import (
	"context"
	"fmt"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

// HomeService assembles the landing page.
type HomeService struct {
	trending *TrendingService
	blogs    *BlogService
}

// NewHomeService creates a new home service.
func NewHomeService(trending *TrendingService, blogs *BlogService) *HomeService {
	return &HomeService{
		trending: trending,
		blogs:    blogs,
	}
}

// Home returns today's trending quotes, the top categories and users, and
// the most recent published blog posts.
func (s *HomeService) Home(ctx context.Context) (*domain.HomeFeed, error) {
	quotes, err := s.trending.TodayQuotes(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.trending.TopCategories(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.trending.TopUsers(ctx)
	if err != nil {
		return nil, err
	}
	blogs, err := s.blogs.List(ctx, true, 0, domain.RecentBlogsOnHome)
	if err != nil {
		return nil, fmt.Errorf("recent blogs: %w", err)
	}

	return &domain.HomeFeed{
		TrendingQuotes:     quotes,
		TrendingCategories: categories,
		TrendingUsers:      users,
		RecentBlogs:        blogs,
	}, nil
}
