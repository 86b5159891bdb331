package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
	"github.com/quotevibe/quotevibe-server/internal/id"
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
	"github.com/quotevibe/quotevibe-server/internal/util"
)

// CreateQuoteRequest is the input for posting a quote.
type CreateQuoteRequest struct {
	Content    string   `json:"content" validate:"required,notblank,max=1000"`
	Author     string   `json:"author" validate:"max=200"`
	CategoryID string   `json:"category_id"`
	Tags       []string `json:"tags" validate:"max=10,dive,max=50"`
}

// ListQuotesParams filters a quote listing. A non-empty Search routes the
// query through the full-text index.
type ListQuotesParams struct {
	CategoryID string
	UserID     string
	Search     string
	Offset     int
	Limit      int
}

// QuoteSearchResult is a page of search hits hydrated from the store.
type QuoteSearchResult struct {
	Query  string              `json:"query"`
	Total  uint64              `json:"total"`
	TookMs int64               `json:"took_ms"`
	Quotes []*domain.Quote     `json:"quotes"`
	Tags   []search.FacetCount `json:"tags,omitempty"`
}

// QuoteService handles quote CRUD and search.
type QuoteService struct {
	db         *sqlite.Store
	index      *search.SearchIndex
	engagement *EngagementService
	logger     *slog.Logger
	now        func() time.Time
}

// NewQuoteService creates a new quote service.
func NewQuoteService(db *sqlite.Store, index *search.SearchIndex, engagement *EngagementService, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		db:         db,
		index:      index,
		engagement: engagement,
		logger:     logger,
		now:        time.Now,
	}
}

// Create posts a quote for userID. Tags are slugified and deduplicated.
func (s *QuoteService) Create(ctx context.Context, userID string, req CreateQuoteRequest) (*domain.Quote, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	quoteID, err := id.Generate(id.PrefixQuote)
	if err != nil {
		return nil, fmt.Errorf("generate quote id: %w", err)
	}

	q := &domain.Quote{
		ID:         quoteID,
		UserID:     userID,
		Content:    strings.TrimSpace(req.Content),
		Author:     strings.TrimSpace(req.Author),
		CategoryID: req.CategoryID,
		Tags:       util.NormalizeTags(req.Tags),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.db.CreateQuote(ctx, q); err != nil {
		return nil, mapStoreError(err, "quote")
	}

	if err := s.index.IndexDocument(search.QuoteToDocument(q)); err != nil {
		s.logger.Warn("failed to index quote", "quote_id", q.ID, "error", err)
	}

	s.logger.Info("quote created", "quote_id", q.ID, "user_id", userID)
	return q, nil
}

// Get returns a quote and counts the read as a view. The view is recorded
// first, so the returned counter includes it.
func (s *QuoteService) Get(ctx context.Context, quoteID string) (*domain.Quote, error) {
	if err := s.engagement.RecordView(ctx, quoteID); err != nil {
		return nil, err
	}
	q, err := s.db.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, mapStoreError(err, "quote")
	}
	return q, nil
}

// List returns quotes newest first, or search hits when params.Search is set.
func (s *QuoteService) List(ctx context.Context, params ListQuotesParams) ([]*domain.Quote, error) {
	offset, limit := domain.ClampPage(params.Offset, params.Limit)

	if strings.TrimSpace(params.Search) != "" {
		res, err := s.Search(ctx, search.SearchParams{
			Query:      params.Search,
			CategoryID: params.CategoryID,
			UserID:     params.UserID,
			Offset:     offset,
			Limit:      limit,
			SortBy:     search.SortRecent,
		})
		if err != nil {
			return nil, err
		}
		return res.Quotes, nil
	}

	quotes, err := s.db.ListQuotes(ctx, domain.QuoteFilter{
		CategoryID: params.CategoryID,
		UserID:     params.UserID,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

// Delete removes a quote. Only its author or an admin may delete it.
func (s *QuoteService) Delete(ctx context.Context, userID string, isAdmin bool, quoteID string) error {
	q, err := s.db.GetQuote(ctx, quoteID)
	if err != nil {
		return mapStoreError(err, "quote")
	}
	if q.UserID != userID && !isAdmin {
		return domainerrors.Forbidden("not allowed to delete this quote")
	}

	if err := s.db.DeleteQuote(ctx, quoteID); err != nil {
		return mapStoreError(err, "quote")
	}
	if err := s.index.DeleteDocument(quoteID); err != nil {
		s.logger.Warn("failed to remove quote from index", "quote_id", quoteID, "error", err)
	}

	s.logger.Info("quote deleted", "quote_id", quoteID, "deleted_by", userID)
	return nil
}

// Search runs a full-text query and hydrates the hits from the store.
// Hits whose quote has since been deleted are dropped.
func (s *QuoteService) Search(ctx context.Context, params search.SearchParams) (*QuoteSearchResult, error) {
	params.Offset, params.Limit = domain.ClampPage(params.Offset, params.Limit)
	params.Tags = util.NormalizeTags(params.Tags)

	res, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search quotes: %w", err)
	}

	ids := make([]string, len(res.Hits))
	for i, hit := range res.Hits {
		ids[i] = hit.ID
	}
	quotes, err := s.db.GetQuotesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate search hits: %w", err)
	}

	return &QuoteSearchResult{
		Query:  res.Query,
		Total:  res.Total,
		TookMs: res.TookMs,
		Quotes: quotes,
		Tags:   res.Tags,
	}, nil
}

// ReindexIfNeeded rebuilds the search index when its mapping changed or its
// document count drifted from the store.
func (s *QuoteService) ReindexIfNeeded(ctx context.Context) error {
	stats, err := s.db.Stats(ctx)
	if err != nil {
		return fmt.Errorf("count quotes: %w", err)
	}
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("count indexed quotes: %w", err)
	}
	if !s.index.NeedsReindex() && count == uint64(stats.QuotesCount) {
		return nil
	}

	start := time.Now()
	quotes, err := s.db.ListAllQuotes(ctx)
	if err != nil {
		return fmt.Errorf("list quotes: %w", err)
	}
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	docs := make([]*search.QuoteDocument, len(quotes))
	for i, q := range quotes {
		docs[i] = search.QuoteToDocument(q)
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index quotes: %w", err)
	}
	s.index.MarkIndexed()

	s.logger.Info("search index rebuilt", "quotes", len(docs), "duration", time.Since(start))
	return nil
}
