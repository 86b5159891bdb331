package domain

// RecentBlogsOnHome is how many published blogs the home feed shows.
const RecentBlogsOnHome = 4

// HomeFeed aggregates the landing page sections.
type HomeFeed struct {
	TrendingQuotes     []*Quote      `json:"trending_quotes"`
	TrendingCategories []*Category   `json:"trending_categories"`
	TrendingUsers      []UserProfile `json:"trending_users"`
	RecentBlogs        []*Blog       `json:"recent_blogs"`
}
