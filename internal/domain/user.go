// Package domain contains the core entities and value types of the quote-sharing service.
package domain

import (
	"strings"
	"time"
)

// User is an account together with its cumulative counters.
// Counters are maintained by side effects of quote, follow, like and save operations.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Bio          string
	Avatar       string
	Country      string
	CountryCode  string
	Phone        string
	Language     string
	IsAdmin      bool

	FollowersCount int64
	FollowingCount int64
	QuotesCount    int64
	// Score is an admin-set reputation value, unrelated to period ranking scores.
	Score int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserProfile is the public view of a user. It never carries credentials.
type UserProfile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Country        string    `json:"country,omitempty"`
	CountryCode    string    `json:"country_code,omitempty"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	QuotesCount    int64     `json:"quotes_count"`
	Score          int64     `json:"score"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile returns the public profile of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		Country:        u.Country,
		CountryCode:    u.CountryCode,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		QuotesCount:    u.QuotesCount,
		Score:          u.Score,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
	}
}

// NormalizeEmail lowercases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate holds optional profile fields. Nil means unchanged.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Avatar   *string
}
