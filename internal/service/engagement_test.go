package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotevibe/quotevibe-server/internal/domain"
	domainerrors "github.com/quotevibe/quotevibe-server/internal/errors"
)

func TestEngagementService_ToggleLikePairing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	author := env.createUser(t, "author", false)
	fan := env.createUser(t, "fan", false)
	env.createQuote(t, "q1", author.ID, "", testNow, 0, 0, 0)

	liked, err := svc.ToggleLike(ctx, fan.ID, "q1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), env.quote(t, "q1").LikesCount)

	liked, err = svc.ToggleLike(ctx, fan.ID, "q1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), env.quote(t, "q1").LikesCount)

	status, err := svc.QuoteStatus(ctx, fan.ID, "q1")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatus{}, status)
}

func TestEngagementService_ToggleLikeNotifiesAuthor(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	author := env.createUser(t, "author", false)
	fan := env.createUser(t, "fan", false)
	env.createQuote(t, "q1", author.ID, "", testNow, 0, 0, 0)

	_, err := svc.ToggleLike(ctx, fan.ID, "q1")
	require.NoError(t, err)

	notifications, err := env.feed.ListNotifications(ctx, author.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationLike, notifications[0].Type)
	assert.Equal(t, fan.ID, notifications[0].ActorID)
	assert.Equal(t, "q1", notifications[0].EntityID)
	assert.Equal(t, "fan liked your quote", notifications[0].Body)

	// Liking your own quote is counted but not notified.
	_, err = svc.ToggleLike(ctx, author.ID, "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), env.quote(t, "q1").LikesCount)

	count, err := env.feed.CountUnread(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngagementService_ToggleLikeUnknownQuote(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	fan := env.createUser(t, "fan", false)

	_, err := svc.ToggleLike(context.Background(), fan.ID, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestEngagementService_ToggleSave(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	author := env.createUser(t, "author", false)
	fan := env.createUser(t, "fan", false)
	env.createQuote(t, "q1", author.ID, "", testNow, 0, 0, 0)
	env.createQuote(t, "q2", author.ID, "", testNow, 0, 0, 0)

	for _, id := range []string{"q1", "q2"} {
		saved, err := svc.ToggleSave(ctx, fan.ID, id)
		require.NoError(t, err)
		assert.True(t, saved)
	}

	saved, err := svc.SavedQuotes(ctx, fan.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	status, err := svc.QuoteStatus(ctx, fan.ID, "q2")
	require.NoError(t, err)
	assert.True(t, status.Saved)
	assert.False(t, status.Liked)

	again, err := svc.ToggleSave(ctx, fan.ID, "q2")
	require.NoError(t, err)
	assert.False(t, again)
	assert.Equal(t, int64(0), env.quote(t, "q2").SavesCount)
	assert.Equal(t, int64(1), env.quote(t, "q1").SavesCount)

	// Saves never notify.
	count, err := env.feed.CountUnread(ctx, author.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestEngagementService_CounterNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	author := env.createUser(t, "author", false)
	users := []*domain.User{
		env.createUser(t, "u1", false),
		env.createUser(t, "u2", false),
		env.createUser(t, "u3", false),
	}
	env.createQuote(t, "q1", author.ID, "", testNow, 0, 0, 0)

	active := map[string]bool{}
	sequence := []int{0, 1, 0, 2, 2, 1, 0, 0, 1, 2}
	for _, i := range sequence {
		u := users[i]
		liked, err := svc.ToggleLike(ctx, u.ID, "q1")
		require.NoError(t, err)
		active[u.ID] = liked

		want := int64(0)
		for _, on := range active {
			if on {
				want++
			}
		}
		got := env.quote(t, "q1").LikesCount
		assert.GreaterOrEqual(t, got, int64(0))
		assert.Equal(t, want, got)
	}
}

func TestEngagementService_ToggleFollow(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)

	following, err := svc.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, int64(1), env.user(t, alice.ID).FollowingCount)
	assert.Equal(t, int64(1), env.user(t, bob.ID).FollowersCount)

	status, err := svc.FollowStatus(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, status)

	notifications, err := env.feed.ListNotifications(ctx, bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotificationFollow, notifications[0].Type)

	following, err = svc.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, int64(0), env.user(t, alice.ID).FollowingCount)
	assert.Equal(t, int64(0), env.user(t, bob.ID).FollowersCount)
}

func TestEngagementService_ToggleFollowSelf(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()
	alice := env.createUser(t, "alice", false)

	for range 2 {
		_, err := svc.ToggleFollow(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	}

	following, err := svc.FollowStatus(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	u := env.user(t, alice.ID)
	assert.Zero(t, u.FollowersCount)
	assert.Zero(t, u.FollowingCount)
}

func TestEngagementService_ToggleFollowUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	alice := env.createUser(t, "alice", false)

	_, err := svc.ToggleFollow(context.Background(), alice.ID, "user-ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Zero(t, env.user(t, alice.ID).FollowingCount)
}

func TestEngagementService_RecordView(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	author := env.createUser(t, "author", false)
	env.createQuote(t, "q1", author.ID, "", testNow, 0, 0, 0)

	for range 3 {
		require.NoError(t, svc.RecordView(ctx, "q1"))
	}
	assert.Equal(t, int64(3), env.quote(t, "q1").ViewsCount)

	assert.ErrorIs(t, svc.RecordView(ctx, "missing"), domainerrors.ErrNotFound)
}

func TestEngagementService_ReconcileCounters(t *testing.T) {
	env := newTestEnv(t)
	svc := env.engagement()
	ctx := context.Background()

	author := env.createUser(t, "author", false)
	// Counters preset without matching like rows have drifted.
	env.createQuote(t, "q1", author.ID, "", testNow, 4, 7, 2)

	report, err := svc.ReconcileCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.QuotesRepaired)

	q := env.quote(t, "q1")
	assert.Zero(t, q.LikesCount)
	assert.Zero(t, q.SavesCount)
	assert.Equal(t, int64(4), q.ViewsCount)

	report, err = svc.ReconcileCounters(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Total())
}
