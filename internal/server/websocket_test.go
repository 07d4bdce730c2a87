package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) (*WebSocketServer, *websocket.Conn) {
	t.Helper()

	cfg := &config.Config{Game: config.DefaultGameSettings()}
	// Seat 0 must act first for the assertions below.
	cfg.Game.ShuffleSeating = false
	cfg.Server.MaxGames = 4
	cfg.Server.WebSocket.ReadTimeout = 5 * time.Second
	cfg.Server.WebSocket.WriteTimeout = 5 * time.Second

	engine := game.NewEngine(zaptest.NewLogger(t))
	s := NewWebSocketServer(cfg, engine, nil, zaptest.NewLogger(t))

	httpSrv := httptest.NewServer(http.HandlerFunc(s.handleWS))
	t.Cleanup(httpSrv.Close)

	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return s, conn
}

// readUntil drains messages until one of the wanted type arrives,
// skipping interleaved notifications.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) serverMessage {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg serverMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgType {
			return msg
		}
		if msg.Type == msgError {
			t.Fatalf("unexpected error message: %s", msg.Error)
		}
	}
	t.Fatalf("no %s message arrived", msgType)
	return serverMessage{}
}

func TestCreateGameOverWebSocket(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(clientMessage{
		Type:    msgCreateGame,
		Players: []string{"Alice", "Bob"},
	}))

	created := readUntil(t, conn, msgGameCreated)
	assert.NotEmpty(t, created.GameID)

	view := readUntil(t, conn, msgView)
	require.NotNil(t, view.View)
	assert.Len(t, view.View.Players, 2)
	assert.Len(t, view.View.Tiles, 40)
}

func TestActionRoundTrip(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(clientMessage{
		Type:    msgCreateGame,
		Players: []string{"Alice", "Bob"},
	}))
	created := readUntil(t, conn, msgGameCreated)

	require.NoError(t, conn.WriteJSON(clientMessage{
		Type:   msgAction,
		Seat:   0,
		Action: string(game.ActionRoll),
	}))
	readUntil(t, conn, msgActionOK)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: msgGetView}))
	view := readUntil(t, conn, msgView)
	require.NotNil(t, view.View)
	assert.Equal(t, created.GameID, view.GameID)
	assert.NotEqual(t, [2]int{0, 0}, view.View.LastRoll)
}

func TestActionErrorsSurfaceToClient(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(clientMessage{
		Type:    msgCreateGame,
		Players: []string{"Alice", "Bob"},
	}))
	readUntil(t, conn, msgGameCreated)

	// Seat 1 acting out of turn comes back as an error envelope.
	require.NoError(t, conn.WriteJSON(clientMessage{
		Type:   msgAction,
		Seat:   1,
		Action: string(game.ActionRoll),
	}))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg serverMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == msgError {
			assert.Contains(t, msg.Error, "out of turn")
			return
		}
	}
}

func TestSpectatorJoin(t *testing.T) {
	s, conn := newTestServer(t)

	require.NoError(t, s.engine.CreateGame("spectate-me", game.GameOptions{
		Players:  []string{"Alice", "Bob"},
		Settings: config.DefaultGameSettings(),
	}))

	require.NoError(t, conn.WriteJSON(clientMessage{
		Type:   msgJoinGame,
		GameID: "spectate-me",
		Seat:   -1,
	}))

	joined := readUntil(t, conn, msgJoined)
	require.NotNil(t, joined.View)
	assert.NotEmpty(t, joined.View.Prompts, "the spectator sees every prompt")
}

func TestPersistenceDisabledErrors(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: msgListSaves}))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg serverMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msgError, msg.Type)
}

func TestUnknownMessageType(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "WARP"}))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg serverMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, msgError, msg.Type)
	assert.Contains(t, msg.Error, "unknown message type")
}
