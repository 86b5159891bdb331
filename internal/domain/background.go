package domain

import "time"

// BackgroundType selects where a background image is used.
type BackgroundType string

// Background types.
const (
	BackgroundStory BackgroundType = "story"
	BackgroundPost  BackgroundType = "post"
)

// Valid reports whether t is story or post.
func (t BackgroundType) Valid() bool {
	return t == BackgroundStory || t == BackgroundPost
}

// Background is an admin-curated image URL for sharing quotes.
type Background struct {
	ID        string         `json:"id"`
	Type      BackgroundType `json:"type"`
	URL       string         `json:"url"`
	CreatedAt time.Time      `json:"created_at"`
}
