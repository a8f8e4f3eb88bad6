package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualsim/relay-backend/config"
	"github.com/virtualsim/relay-backend/models"
)

func newInfoServer(t *testing.T) *httptest.Server {
	t.Helper()
	relay := newTestRelay(t, quietSettings())
	cfg := &config.Config{Port: "0", WSURL: "wss://relay.example/ws"}
	srv := httptest.NewServer(NewRouter(relay, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string) (*http.Response, models.ApiResponse) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestStatusEndpoint(t *testing.T) {
	srv := newInfoServer(t)

	resp, body := getJSON(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.True(t, body.Success)

	data := body.Data.(map[string]any)
	assert.Equal(t, "Virtual Sim", data["game"])
	assert.Equal(t, "ONE", data["server"])
	assert.Equal(t, float64(0), data["playersOnline"])
}

func TestServerInfoEndpoint(t *testing.T) {
	srv := newInfoServer(t)

	_, body := getJSON(t, srv.URL+"/api/server")
	require.True(t, body.Success)

	data := body.Data.(map[string]any)
	assert.Equal(t, "wss://relay.example/ws", data["wsUrl"])
	assert.Equal(t, "ok", data["status"])
	assert.Len(t, data["gameModes"].([]any), len(models.GameModes))
}

func TestGameModesEndpoint(t *testing.T) {
	srv := newInfoServer(t)

	_, body := getJSON(t, srv.URL+"/api/game-modes")
	require.True(t, body.Success)

	modes := body.Data.(map[string]any)["gameModes"].([]any)
	require.Len(t, modes, len(models.GameModeCatalog))
	first := modes[0].(map[string]any)
	assert.Equal(t, models.ModeTDM, first["id"])
	assert.Equal(t, float64(10), first["maxPlayers"])
	assert.Equal(t, float64(2), first["minToStart"])
}

func TestUnknownRouteAndMethod(t *testing.T) {
	srv := newInfoServer(t)

	resp, body := getJSON(t, srv.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)

	post, err := http.Post(srv.URL+"/api/server", "application/json", nil)
	require.NoError(t, err)
	defer post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/server", nil)
	require.NoError(t, err)
	preflight, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer preflight.Body.Close()
	assert.Equal(t, http.StatusOK, preflight.StatusCode)
}
