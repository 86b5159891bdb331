package domain

import "time"

// Quote is a short piece of text posted by a user.
// LikesCount and SavesCount track active Like and Save records; ViewsCount and
// SharesCount only grow.
type Quote struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Content     string    `json:"content"`
	Author      string    `json:"author,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	Tags        []string  `json:"tags"`
	LikesCount  int64     `json:"likes_count"`
	SavesCount  int64     `json:"saves_count"`
	ViewsCount  int64     `json:"views_count"`
	SharesCount int64     `json:"shares_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuoteFilter narrows a quote listing. Results are newest first.
type QuoteFilter struct {
	CategoryID string
	UserID     string
	Offset     int
	Limit      int
}

// QuoteCounter names one of the engagement counters on a quote.
type QuoteCounter string

// Sortable quote counters.
const (
	QuoteCounterLikes QuoteCounter = "likes"
	QuoteCounterSaves QuoteCounter = "saves"
	QuoteCounterViews QuoteCounter = "views"
)

// Valid reports whether c is a known counter.
func (c QuoteCounter) Valid() bool {
	switch c {
	case QuoteCounterLikes, QuoteCounterSaves, QuoteCounterViews:
		return true
	default:
		return false
	}
}

// Column returns the storage column backing the counter.
func (c QuoteCounter) Column() string {
	switch c {
	case QuoteCounterLikes:
		return "likes_count"
	case QuoteCounterSaves:
		return "saves_count"
	default:
		return "views_count"
	}
}

// Pagination defaults shared by list endpoints.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ClampPage normalizes offset and limit.
func ClampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return offset, limit
}
