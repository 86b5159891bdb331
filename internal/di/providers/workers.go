package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/quotevibe/quotevibe-server/internal/config"
	"github.com/quotevibe/quotevibe-server/internal/logger"
	"github.com/quotevibe/quotevibe-server/internal/service"
)

// ReconcileJob periodically recomputes stored counters from relation rows.
type ReconcileJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *ReconcileJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideReconcileJob provides the periodic counter reconcile job.
// A zero interval leaves the job idle.
func ProvideReconcileJob(i do.Injector) (*ReconcileJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	engagement := do.MustInvoke[*service.EngagementService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	interval := cfg.Ledger.ReconcileInterval
	if interval <= 0 {
		log.Info("Counter reconcile job disabled")
		return &ReconcileJob{cancel: cancel}, nil
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				report, err := engagement.ReconcileCounters(ctx)
				if err != nil {
					log.Warn("Counter reconcile failed", "error", err)
				} else if report.Total() > 0 {
					log.Info("Counter reconcile repaired drift",
						"quotes", report.QuotesRepaired,
						"users", report.UsersRepaired,
						"categories", report.CategoriesRepaired,
					)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Counter reconcile job started", "interval", interval)

	return &ReconcileJob{cancel: cancel}, nil
}
