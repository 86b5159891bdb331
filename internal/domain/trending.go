package domain

// TrendingKind selects what a trending list ranks.
type TrendingKind string

// Trending kinds.
const (
	TrendingQuotes     TrendingKind = "quotes"
	TrendingCategories TrendingKind = "categories"
	TrendingUsers      TrendingKind = "users"
)

// Valid reports whether k is a known kind.
func (k TrendingKind) Valid() bool {
	switch k {
	case TrendingQuotes, TrendingCategories, TrendingUsers:
		return true
	default:
		return false
	}
}

// DefaultWindow is the window used when a caller does not choose one:
// quotes trend within today, categories and users over all time.
func (k TrendingKind) DefaultWindow() Period {
	if k == TrendingQuotes {
		return PeriodDaily
	}
	return PeriodAll
}

// Trending is an ordered top-N list. Exactly one of the slices is populated.
type Trending struct {
	Kind       TrendingKind  `json:"kind"`
	Window     Period        `json:"window"`
	Quotes     []*Quote      `json:"quotes,omitempty"`
	Categories []*Category   `json:"categories,omitempty"`
	Users      []UserProfile `json:"users,omitempty"`
}
