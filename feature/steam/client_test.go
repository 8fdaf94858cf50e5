package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JakeMartin-ICL/steam-storage-optimiser/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIURL: server.URL + "/"}, "secret", "76561197960287930", server.Client(), nil)
}

func TestGetOwnedGames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v1", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "76561197960287930", r.URL.Query().Get("steamid"))
		assert.Equal(t, "true", r.URL.Query().Get("include_appinfo"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":{"game_count":2,"games":[
			{"appid":10,"name":"Counter-Strike","playtime_forever":1234,"img_icon_url":"x"},
			{"appid":20,"name":"Team Fortress Classic","playtime_forever":0}
		]}}`))
	})

	games, err := client.GetOwnedGames(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []reconcile.OwnedGame{
		{AppID: 10, Name: "Counter-Strike", PlaytimeForever: 1234},
		{AppID: 20, Name: "Team Fortress Classic", PlaytimeForever: 0},
	}, games)
}

func TestGetOwnedGames_EmptyLibrary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"game_count":0,"games":[]}}`))
	})

	games, err := client.GetOwnedGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGetOwnedGames_InvalidResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"PrivateProfile", http.StatusOK, `{"response":{}}`},
		{"NotJSON", http.StatusOK, `<html>Access denied</html>`},
		{"Forbidden", http.StatusForbidden, `<html><title>Forbidden</title></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			games, err := client.GetOwnedGames(context.Background())
			assert.ErrorIs(t, err, ErrInvalidResponse)
			assert.Nil(t, games)
		})
	}
}

func TestGetOwnedGames_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(Config{APIURL: server.URL}, "secret", "1", http.DefaultClient, nil)

	_, err := client.GetOwnedGames(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret")
}

func TestSnippet(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, snippet(long), 203)
	assert.Equal(t, "ok", snippet([]byte("  ok \n")))
}
