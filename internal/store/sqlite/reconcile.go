package sqlite

import (
	"context"
	"database/sql"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

// ReconcileCounters recomputes every denormalized counter from the source rows
// and rewrites the ones that drifted. views_count and shares_count have no
// source rows and are left alone.
func (s *Store) ReconcileCounters(ctx context.Context) (*domain.ReconcileReport, error) {
	var report domain.ReconcileReport

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		quoteFix := `
			UPDATE quotes SET
				likes_count = (SELECT COUNT(*) FROM likes WHERE likes.quote_id = quotes.id),
				saves_count = (SELECT COUNT(*) FROM saves WHERE saves.quote_id = quotes.id)
			WHERE likes_count <> (SELECT COUNT(*) FROM likes WHERE likes.quote_id = quotes.id)
			   OR saves_count <> (SELECT COUNT(*) FROM saves WHERE saves.quote_id = quotes.id)`
		n, err := execCount(ctx, tx, quoteFix)
		if err != nil {
			return err
		}
		report.QuotesRepaired = n

		userFix := `
			UPDATE users SET
				quotes_count    = (SELECT COUNT(*) FROM quotes  WHERE quotes.user_id = users.id),
				followers_count = (SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id),
				following_count = (SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id)
			WHERE quotes_count    <> (SELECT COUNT(*) FROM quotes  WHERE quotes.user_id = users.id)
			   OR followers_count <> (SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id)
			   OR following_count <> (SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id)`
		if report.UsersRepaired, err = execCount(ctx, tx, userFix); err != nil {
			return err
		}

		categoryFix := `
			UPDATE categories SET
				quotes_count = (SELECT COUNT(*) FROM quotes WHERE quotes.category_id = categories.id)
			WHERE quotes_count <> (SELECT COUNT(*) FROM quotes WHERE quotes.category_id = categories.id)`
		report.CategoriesRepaired, err = execCount(ctx, tx, categoryFix)
		return err
	})
	if err != nil {
		return nil, err
	}

	if report.Total() > 0 {
		s.logger.Info("Counters reconciled",
			"quotes", report.QuotesRepaired,
			"users", report.UsersRepaired,
			"categories", report.CategoriesRepaired,
		)
	}
	return &report, nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string) (int64, error) {
	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
