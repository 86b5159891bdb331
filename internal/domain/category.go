package domain

import "time"

// Category groups quotes. ParentID forms an optional tree; it is not validated beyond
// being a nullable reference.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    string    `json:"parent_id,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	QuotesCount int64     `json:"quotes_count"`
	CreatedAt   time.Time `json:"created_at"`
}
