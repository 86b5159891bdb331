package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_ProfileOmitsCredentials(t *testing.T) {
	u := &User{
		ID:             "user-1",
		Username:       "ayse",
		Email:          "ayse@example.com",
		PasswordHash:   "$argon2id$secret",
		Phone:          "+90555",
		FollowersCount: 3,
		CreatedAt:      time.Now(),
	}

	p := u.Profile()
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, int64(3), p.FollowersCount)
	assert.NotContains(t, []string{p.Username, p.Email, p.FullName, p.Bio}, u.PasswordHash)
}

func TestMessage_Counterpart(t *testing.T) {
	m := &Message{SenderID: "a", ReceiverID: "b"}

	assert.Equal(t, "b", m.Counterpart("a"))
	assert.Equal(t, "a", m.Counterpart("b"))
}

func TestEnums(t *testing.T) {
	assert.True(t, BackgroundStory.Valid())
	assert.True(t, BackgroundPost.Valid())
	assert.False(t, BackgroundType("banner").Valid())

	assert.True(t, NotificationSystem.Valid())
	assert.False(t, NotificationType("comment").Valid())
}
