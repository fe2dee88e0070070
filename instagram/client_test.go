package instagram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-client-id", zerolog.Nop())
	client.BaseURL = server.URL
	client.Cooldown = 10 * time.Millisecond
	return client
}

func TestRecentMediaPagination(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/42/media/recent", r.URL.Path)
		assert.Equal(t, "test-client-id", r.URL.Query().Get("client_id"))
		assert.Equal(t, "100", r.URL.Query().Get("count"))
		switch r.URL.Query().Get("max_id") {
		case "":
			fmt.Fprint(w, `{
				"meta": {"code": 200},
				"pagination": {"next_max_id": "page2"},
				"data": [{
					"id": "100_1",
					"created_time": "1438560000",
					"caption": {"text": "up the mountain"},
					"tags": ["hike"],
					"type": "image",
					"user": {"id": "42"},
					"location": {"id": 7000, "name": "camelback", "latitude": 33.45, "longitude": -112.07}
				}]
			}`)
		case "page2":
			fmt.Fprint(w, `{
				"meta": {"code": 200},
				"pagination": {},
				"data": [{"id": "101_1", "created_time": "1438560001", "type": "image", "user": {"id": "42"}}]
			}`)
		default:
			t.Errorf("unexpected max_id %q", r.URL.Query().Get("max_id"))
		}
	})

	items, next, err := client.RecentMedia(context.Background(), 42, "")
	require.NoError(t, err)
	assert.Equal(t, "page2", next)
	require.Len(t, items, 1)
	assert.Equal(t, "100_1", items[0].ID)
	assert.Equal(t, "up the mountain", items[0].CaptionText())
	assert.True(t, items[0].Location.HasCoordinates())
	id, err := items[0].Location.NumericID()
	require.NoError(t, err)
	assert.Equal(t, int64(7000), id)

	items, next, err = client.RecentMedia(context.Background(), 42, next)
	require.NoError(t, err)
	assert.Empty(t, next, "missing next_max_id means the final page")
	require.Len(t, items, 1)
	assert.False(t, items[0].Location.HasCoordinates())
}

func TestRecentMediaPrivateAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meta": {"code": 400, "error_type": "APINotAllowedError"}}`)
	})

	_, _, err := client.RecentMedia(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrPrivateAccount)
}

func TestRecentMediaHardFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meta": {"code": 500}}`)
	})

	_, _, err := client.RecentMedia(context.Background(), 42, "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPrivateAccount)
	assert.Contains(t, err.Error(), "code 500")
}

func TestFollowers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/42/followed-by", r.URL.Path)
		fmt.Fprint(w, `{"meta": {"code": 200}, "data": [{"id": "7"}, {"id": "8"}]}`)
	})

	followers, err := client.Followers(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	id, err := followers[0].NumericID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestFollowersTransportStatusFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `not json`)
	})

	_, err := client.Followers(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPrivateAccount)
}

func TestSearchMedia(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/media/search", r.URL.Path)
		assert.Equal(t, "33.45", r.URL.Query().Get("lat"))
		assert.Equal(t, "-112.07", r.URL.Query().Get("lng"))
		fmt.Fprint(w, `{"meta": {"code": 200}, "data": [{"id": "1_1", "user": {"id": "7"}}]}`)
	})

	items, err := client.SearchMedia(context.Background(), 33.45, -112.07)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "7", items[0].User.ID)
}

func TestCooldownWhenQuotaLow(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Remaining", "5")
		fmt.Fprint(w, `{"meta": {"code": 200}, "data": []}`)
	})
	client.Cooldown = 60 * time.Millisecond

	start := time.Now()
	_, _, err := client.RecentMedia(context.Background(), 42, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond, "low quota pauses before returning")
}

func TestNoCooldownWhenQuotaHealthy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Remaining", "500")
		fmt.Fprint(w, `{"meta": {"code": 200}, "data": []}`)
	})
	client.Cooldown = 60 * time.Millisecond

	start := time.Now()
	_, _, err := client.RecentMedia(context.Background(), 42, "")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 60*time.Millisecond)
}

func TestTooManyRequestsTriggersCooldown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{}`)
	})
	client.Cooldown = 30 * time.Millisecond

	start := time.Now()
	_, _, err := client.RecentMedia(context.Background(), 42, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 429")
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCooldownObservesShutdown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Remaining", "0")
		fmt.Fprint(w, `{"meta": {"code": 200}, "data": []}`)
	})
	client.Cooldown = 5 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	client.RecentMedia(ctx, 42, "")
	assert.Less(t, time.Since(start), time.Second, "shutdown interrupts the pause")
}
