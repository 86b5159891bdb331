package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

func (s *Server) registerDiscoverRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getTrending",
		Method:      http.MethodGet,
		Path:        "/api/v1/trending/{kind}",
		Summary:     "Get trending",
		Description: "Returns the top quotes, categories or users created within a window",
		Tags:        []string{"Discover"},
	}, s.handleGetTrending)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTodayQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/discover/today",
		Summary:     "Today's quotes",
		Description: "Returns the most viewed quotes created since 00:00 UTC",
		Tags:        []string{"Discover"},
	}, s.handleGetTodayQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMostQuotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/discover/most/{counter}",
		Summary:     "Most liked, saved or viewed",
		Description: "Pages through all quotes ordered by one engagement counter",
		Tags:        []string{"Discover"},
	}, s.handleGetMostQuotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRanking",
		Method:      http.MethodGet,
		Path:        "/api/v1/ranking",
		Summary:     "Get ranking",
		Description: "Returns up to 50 users ranked by activity on quotes created within the period",
		Tags:        []string{"Discover"},
	}, s.handleGetRanking)

	huma.Register(s.api, huma.Operation{
		OperationID: "getHome",
		Method:      http.MethodGet,
		Path:        "/api/v1/home",
		Summary:     "Home feed",
		Description: "Trending quotes, categories and users plus the latest published blogs",
		Tags:        []string{"Discover"},
	}, s.handleGetHome)
}

// === DTOs ===

// TrendingInput selects the trending list.
type TrendingInput struct {
	Kind   string `path:"kind" doc:"quotes, categories or users"`
	Window string `query:"window" doc:"daily, monthly, yearly or all (default depends on kind)"`
}

// TrendingOutput wraps the trending list for Huma.
type TrendingOutput struct {
	Body *domain.Trending
}

// MostQuotesInput selects the counter and page.
type MostQuotesInput struct {
	Counter string `path:"counter" doc:"likes, saves or views"`
	PageParams
}

// RankingInput selects the ranking period.
type RankingInput struct {
	Period string `query:"period" default:"daily" doc:"daily, monthly or yearly; anything else means daily"`
}

// RankingOutput wraps the ranking for Huma.
type RankingOutput struct {
	Body *domain.Ranking
}

// HomeOutput wraps the home feed for Huma.
type HomeOutput struct {
	Body *domain.HomeFeed
}

// === Handlers ===

func (s *Server) handleGetTrending(ctx context.Context, input *TrendingInput) (*TrendingOutput, error) {
	trending, err := s.services.Trending.GetTrending(ctx, domain.TrendingKind(input.Kind), input.Window)
	if err != nil {
		return nil, err
	}
	return &TrendingOutput{Body: trending}, nil
}

func (s *Server) handleGetTodayQuotes(ctx context.Context, _ *struct{}) (*QuoteListOutput, error) {
	quotes, err := s.services.Trending.TodayQuotes(ctx)
	if err != nil {
		return nil, err
	}
	return &QuoteListOutput{Body: QuoteListResponse{Quotes: quotesOrEmpty(quotes)}}, nil
}

func (s *Server) handleGetMostQuotes(ctx context.Context, input *MostQuotesInput) (*QuoteListOutput, error) {
	quotes, err := s.services.Trending.MostQuotes(ctx, domain.QuoteCounter(input.Counter), input.Offset, input.Limit)
	if err != nil {
		return nil, err
	}
	return &QuoteListOutput{Body: QuoteListResponse{Quotes: quotesOrEmpty(quotes)}}, nil
}

func (s *Server) handleGetRanking(ctx context.Context, input *RankingInput) (*RankingOutput, error) {
	ranking, err := s.services.Ranking.GetRanking(ctx, input.Period)
	if err != nil {
		return nil, err
	}
	return &RankingOutput{Body: ranking}, nil
}

func (s *Server) handleGetHome(ctx context.Context, _ *struct{}) (*HomeOutput, error) {
	feed, err := s.services.Home.Home(ctx)
	if err != nil {
		return nil, err
	}
	return &HomeOutput{Body: feed}, nil
}
