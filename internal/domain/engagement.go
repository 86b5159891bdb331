package domain

import "time"

// Like, Save and Follow are toggle relations: at most one record exists per
// (actor, target) pair, and repeating the action removes it.

// Like marks a quote as liked by a user.
type Like struct {
	ID        string
	UserID    string
	QuoteID   string
	CreatedAt time.Time
}

// Save bookmarks a quote for a user.
type Save struct {
	ID        string
	UserID    string
	QuoteID   string
	CreatedAt time.Time
}

// Follow is a directed relation from follower to followee.
type Follow struct {
	ID          string
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}

// QuoteStatus reports the viewer's relation to a quote.
type QuoteStatus struct {
	Liked bool `json:"liked"`
	Saved bool `json:"saved"`
}
