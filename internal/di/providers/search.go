package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/search"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve quote index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Data.BasePath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount, "needs_reindex", index.NeedsReindex())

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the quote index in the background
// when it is new, its mapping changed or it drifted from the store.
// Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	quotes := do.MustInvoke[*service.QuoteService](i)
	log := do.MustInvoke[*logger.Logger](i)

	go func() {
		if err := quotes.ReindexIfNeeded(context.Background()); err != nil {
			log.Error("Search reindex failed", "error", err)
		}
	}()
}
