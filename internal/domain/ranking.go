package domain

// ScoreWeights are the tunable multipliers of the period ranking score.
// Posting and saves weigh the most; views weigh the least.
type ScoreWeights struct {
	Post int64
	View int64
	Like int64
	Save int64
}

// DefaultScoreWeights are the production weights.
var DefaultScoreWeights = ScoreWeights{
	Post: 10,
	View: 1,
	Like: 5,
	Save: 8,
}

// MaxRankingEntries caps the leaderboard length.
const MaxRankingEntries = 50

// ActivityTotals are period-scoped sums over one author's quotes.
// QuotesCount is the number of quotes in the window, not the stored user counter.
type ActivityTotals struct {
	QuotesCount int64 `json:"quotes_count"`
	TotalViews  int64 `json:"total_views"`
	TotalLikes  int64 `json:"total_likes"`
	TotalSaves  int64 `json:"total_saves"`
}

// Add folds one quote into the totals.
func (t *ActivityTotals) Add(q *Quote) {
	t.QuotesCount++
	t.TotalViews += q.ViewsCount
	t.TotalLikes += q.LikesCount
	t.TotalSaves += q.SavesCount
}

// Score applies the weights.
func (t ActivityTotals) Score(w ScoreWeights) int64 {
	return t.QuotesCount*w.Post + t.TotalViews*w.View + t.TotalLikes*w.Like + t.TotalSaves*w.Save
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	User UserProfile `json:"user"`
	ActivityTotals
	Score int64 `json:"score"`
}

// Ranking is a computed leaderboard.
type Ranking struct {
	Period  Period         `json:"period"`
	Entries []RankingEntry `json:"entries"`
}
