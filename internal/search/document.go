// Package search provides full-text quote search on top of Bleve.
package search

import (
	"github.com/quotevibe/quotevibe-server/internal/domain"
)

// QuoteDocument is the indexed form of a quote. Counters are copied at index
// time and used only for "popular" sorting; they are refreshed whenever the
// quote is re-indexed.
type QuoteDocument struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	Author     string   `json:"author,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	CategoryID string   `json:"category_id,omitempty"`
	UserID     string   `json:"user_id"`
	LikesCount int64    `json:"likes_count"`
	CreatedAt  int64    `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map keyed by the mapping's field names.
func (d *QuoteDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":          d.ID,
		"content":     d.Content,
		"user_id":     d.UserID,
		"likes_count": d.LikesCount,
		"created_at":  d.CreatedAt,
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.CategoryID != "" {
		m["category_id"] = d.CategoryID
	}
	return m
}

// QuoteToDocument converts a domain quote to its search document.
func QuoteToDocument(q *domain.Quote) *QuoteDocument {
	return &QuoteDocument{
		ID:         q.ID,
		Content:    q.Content,
		Author:     q.Author,
		Tags:       q.Tags,
		CategoryID: q.CategoryID,
		UserID:     q.UserID,
		LikesCount: q.LikesCount,
		CreatedAt:  q.CreatedAt.UnixMilli(),
	}
}
