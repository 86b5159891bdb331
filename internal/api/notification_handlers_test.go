package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotevibe/quotevibe-server/internal/domain"
)

func TestNotifications_FromEngagement(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")
	quoteID := ts.createQuote(t, alice.AccessToken, "Dream big")

	// Own likes never notify.
	resp := ts.api.Post("/api/v1/quotes/"+quoteID+"/like", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/quotes/"+quoteID+"/like", bearer(bob.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Post("/api/v1/users/"+alice.User.ID+"/follow", bearer(bob.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notifications", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[NotificationListResponse](t, resp.Body.Bytes())
	require.Len(t, list.Data.Notifications, 2)

	types := []domain.NotificationType{list.Data.Notifications[0].Type, list.Data.Notifications[1].Type}
	assert.ElementsMatch(t, []domain.NotificationType{domain.NotificationLike, domain.NotificationFollow}, types)
	for _, n := range list.Data.Notifications {
		assert.Equal(t, bob.User.ID, n.ActorID)
		assert.False(t, n.Read)
	}

	resp = ts.api.Get("/api/v1/notifications/unread-count", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(2), decode[UnreadCountResponse](t, resp.Body.Bytes()).Data.Count)

	first := list.Data.Notifications[0].ID
	resp = ts.api.Post("/api/v1/notifications/"+first+"/read", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notifications/unread-count", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(1), decode[UnreadCountResponse](t, resp.Body.Bytes()).Data.Count)

	resp = ts.api.Post("/api/v1/notifications/read-all", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, decode[MarkAllReadResponse](t, resp.Body.Bytes()).Data.Updated)

	// Bob got nothing.
	resp = ts.api.Get("/api/v1/notifications", bearer(bob.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[NotificationListResponse](t, resp.Body.Bytes()).Data.Notifications)
}

func TestNotifications_MarkOthersRead(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	resp := ts.api.Post("/api/v1/users/"+alice.User.ID+"/follow", bearer(bob.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notifications", bearer(alice.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[NotificationListResponse](t, resp.Body.Bytes())
	require.Len(t, list.Data.Notifications, 1)

	resp = ts.api.Post("/api/v1/notifications/"+list.Data.Notifications[0].ID+"/read", bearer(bob.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
