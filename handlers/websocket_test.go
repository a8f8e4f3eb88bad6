package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualsim/relay-backend/config"
	"github.com/virtualsim/relay-backend/models"
)

func newTestServer(t *testing.T, settings Settings) (*Relay, *httptest.Server) {
	t.Helper()
	relay := newTestRelay(t, settings)
	cfg := &config.Config{Port: "0", WSURL: "ws://test/ws"}
	srv := httptest.NewServer(NewRouter(relay, cfg))
	t.Cleanup(srv.Close)
	return relay, srv
}

// dialWS connects a client and returns the connection together with its
// join handshake.
func dialWS(t *testing.T, srv *httptest.Server) (*websocket.Conn, map[string]any) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	join := readWS(t, conn)
	require.Equal(t, models.MsgJoin, join["type"])
	return conn, join
}

func readWS(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]any
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// readUntil skips messages until one of the wanted type shows up.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		msg := readWS(t, conn)
		if msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("never received %q", msgType)
	return nil
}

func sendWS(t *testing.T, conn *websocket.Conn, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestJoinHandshakeCarriesAppliedState(t *testing.T) {
	_, srv := newTestServer(t, quietSettings())

	c1, join1 := dialWS(t, srv)
	p1 := join1["yourId"].(string)

	// The watcher's receipt of the rebroadcast proves the update has
	// been applied before the next handshake snapshot is taken.
	watcher, _ := dialWS(t, srv)
	sendWS(t, c1, map[string]any{"type": "update", "x": 10, "y": 20, "level": 5})
	readUntil(t, watcher, models.MsgPlayerUpdate)

	_, join2 := dialWS(t, srv)
	players := join2["players"].([]any)
	require.Len(t, players, 3)

	var snapshot map[string]any
	for _, raw := range players {
		if p := raw.(map[string]any); p["id"] == p1 {
			snapshot = p
		}
	}
	require.NotNil(t, snapshot)
	assert.Equal(t, float64(10), snapshot["x"])
	assert.Equal(t, float64(20), snapshot["y"])
	assert.Equal(t, float64(5), snapshot["level"])
}

func TestArrivalAndDepartureBroadcasts(t *testing.T) {
	_, srv := newTestServer(t, quietSettings())

	c1, _ := dialWS(t, srv)
	c2, join2 := dialWS(t, srv)
	p2 := join2["yourId"].(string)

	joined := readUntil(t, c1, models.MsgPlayerJoined)
	assert.Equal(t, p2, joined["player"].(map[string]any)["id"])

	c2.Close()
	left := readUntil(t, c1, models.MsgPlayerLeft)
	assert.Equal(t, p2, left["id"])
}

func TestMatchmakingOverWire(t *testing.T) {
	_, srv := newTestServer(t, quietSettings())

	c1, _ := dialWS(t, srv)
	c2, _ := dialWS(t, srv)

	sendWS(t, c1, map[string]any{"type": "matchmaking_join", "mode": "TDM"})
	queued1 := readUntil(t, c1, models.MsgMatchmakingQueued)
	assert.Equal(t, float64(1), queued1["queueSize"])

	sendWS(t, c2, map[string]any{"type": "matchmaking_join", "mode": "TDM"})
	queued2 := readUntil(t, c2, models.MsgMatchmakingQueued)
	assert.Equal(t, float64(2), queued2["queueSize"])

	created1 := readUntil(t, c1, models.MsgLobbyCreated)
	created2 := readUntil(t, c2, models.MsgLobbyCreated)
	assert.Equal(t, created1["lobby"], created2["lobby"])

	players := created1["lobby"].(map[string]any)["players"].([]any)
	require.Len(t, players, 2)
	teams := map[string]int{}
	for _, raw := range players {
		teams[raw.(map[string]any)["team"].(string)]++
	}
	assert.Equal(t, map[string]int{models.TeamAlpha: 1, models.TeamBravo: 1}, teams)
}

func TestDisconnectDisbandsLobby(t *testing.T) {
	_, srv := newTestServer(t, quietSettings())

	c1, _ := dialWS(t, srv)
	c2, _ := dialWS(t, srv)

	sendWS(t, c1, map[string]any{"type": "matchmaking_join", "mode": "CTF"})
	sendWS(t, c2, map[string]any{"type": "matchmaking_join", "mode": "CTF"})
	created := readUntil(t, c2, models.MsgLobbyCreated)
	lobbyID := created["lobby"].(map[string]any)["id"].(string)

	c1.Close()

	disbanded := readUntil(t, c2, models.MsgLobbyDisbanded)
	assert.Equal(t, lobbyID, disbanded["lobbyId"])

	sendWS(t, c2, map[string]any{"type": "get_my_lobby"})
	mine := readUntil(t, c2, models.MsgMyLobby)
	assert.Nil(t, mine["lobby"])
}

func TestHeartbeatRemovesSilentConnection(t *testing.T) {
	settings := quietSettings()
	settings.HeartbeatInterval = 100 * time.Millisecond
	relay, srv := newTestServer(t, settings)

	c1, join1 := dialWS(t, srv)
	p1 := join1["yourId"].(string)
	// Swallow pings instead of answering them, like a dead transport.
	c1.SetPingHandler(func(string) error { return nil })
	go func() {
		for {
			if _, _, err := c1.ReadMessage(); err != nil {
				return
			}
		}
	}()

	c2, _ := dialWS(t, srv)

	left := readUntil(t, c2, models.MsgPlayerLeft)
	assert.Equal(t, p1, left["id"])
	assert.Equal(t, 1, relay.PlayerCount())
}

func TestStalenessSweepRemovesIdleParticipant(t *testing.T) {
	settings := quietSettings()
	settings.StaleSweepInterval = 20 * time.Millisecond
	settings.StaleAfter = 60 * time.Millisecond
	relay, srv := newTestServer(t, settings)

	c1, join1 := dialWS(t, srv)
	p1 := join1["yourId"].(string)

	c2, _ := dialWS(t, srv)
	// Keep the second participant fresh while the first goes silent.
	stopUpdates := make(chan struct{})
	defer close(stopUpdates)
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				data, _ := json.Marshal(map[string]any{"type": "update", "x": 1})
				_ = c2.WriteMessage(websocket.TextMessage, data)
			case <-stopUpdates:
				return
			}
		}
	}()

	left := readUntil(t, c2, models.MsgPlayerLeft)
	assert.Equal(t, p1, left["id"])

	// The transport is still open: the pruned participant hears about
	// its own departure.
	own := readUntil(t, c1, models.MsgPlayerLeft)
	assert.Equal(t, p1, own["id"])
	assert.Equal(t, 1, relay.PlayerCount())
}

func TestMalformedPayloadKeepsConnectionOpen(t *testing.T) {
	_, srv := newTestServer(t, quietSettings())

	c1, _ := dialWS(t, srv)
	require.NoError(t, c1.WriteMessage(websocket.TextMessage, []byte("{definitely not json")))
	sendWS(t, c1, map[string]any{"type": "get_my_lobby"})

	mine := readUntil(t, c1, models.MsgMyLobby)
	assert.Nil(t, mine["lobby"])
}
