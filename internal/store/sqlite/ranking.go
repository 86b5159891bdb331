package sqlite

import (
	"context"
	"time"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

// AggregateActivitySince sums, per author, the quotes created at or after
// since. Authors with no quotes in the window are absent from the result.
// The sums equal folding QuotesByAuthorSince through ActivityTotals.Add.
func (s *Store) AggregateActivitySince(ctx context.Context, since time.Time) (map[string]domain.ActivityTotals, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, COUNT(*), SUM(views_count), SUM(likes_count), SUM(saves_count)
		FROM quotes
		WHERE created_at >= ?
		GROUP BY user_id`, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]domain.ActivityTotals)
	for rows.Next() {
		var (
			userID string
			t      domain.ActivityTotals
		)
		if err := rows.Scan(&userID, &t.QuotesCount, &t.TotalViews, &t.TotalLikes, &t.TotalSaves); err != nil {
			return nil, err
		}
		totals[userID] = t
	}
	return totals, rows.Err()
}
