package providers

import (
	"log/slog"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/store"
	"github.com/quotevibe/quotevibe-server/internal/store/sqlite"
)

// StoreHandle wraps the relational store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the sqlite store holding users, quotes and the counter ledger.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "quotevibe.db")
	db, err := sqlite.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// FeedHandle wraps the notification feed with shutdown capability.
type FeedHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *FeedHandle) Shutdown() error {
	return h.Close()
}

// ProvideFeed provides the badger-backed notification feed.
func ProvideFeed(i do.Injector) (*FeedHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	feedPath := filepath.Join(cfg.Data.BasePath, "notifications")
	feed, err := store.New(feedPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Notification feed initialized", "path", feedPath)

	return &FeedHandle{Store: feed}, nil
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}
