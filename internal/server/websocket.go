// Package server exposes the rules engine over WebSocket. Clients exchange
// JSON envelopes; every state change is fanned out to the subscribers of
// the affected game.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game"
	"github.com/openmonopoly/monopoly-server-go/internal/repository"
	"go.uber.org/zap"
)

// WebSocketServer owns the HTTP listener and the connected clients.
type WebSocketServer struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *game.Engine
	// saves is nil when the server runs without a database.
	saves *repository.SaveGameRepository

	upgrader websocket.Upgrader
	httpSrv  *http.Server

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client is one WebSocket connection. Writes go through the send channel so
// the write pump is the only goroutine touching the connection for output.
type client struct {
	conn   *websocket.Conn
	send   chan serverMessage
	gameID string
	seat   int
}

// NewWebSocketServer creates the transport around an engine.
func NewWebSocketServer(cfg *config.Config, engine *game.Engine, saves *repository.SaveGameRepository, logger *zap.Logger) *WebSocketServer {
	s := &WebSocketServer{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		saves:  saves,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
	engine.SetNotificationHandler(s.handleNotification)
	return s
}

// Start runs the HTTP listener until the server shuts down.
func (s *WebSocketServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Server.WebSocket.Path, s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpSrv = &http.Server{
		Addr:        s.cfg.Server.WebSocket.Address,
		Handler:     mux,
		ReadTimeout: s.cfg.Server.WebSocket.ReadTimeout,
	}

	s.logger.Info("websocket server listening",
		zap.String("address", s.cfg.Server.WebSocket.Address),
		zap.String("path", s.cfg.Server.WebSocket.Path),
	)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("websocket server failed: %w", err)
	}
	return nil
}

// Shutdown closes the listener and every client connection.
func (s *WebSocketServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for c := range s.clients {
		close(c.send)
	}
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

func (s *WebSocketServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn: conn,
		send: make(chan serverMessage, 32),
		seat: -1,
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.logger.Debug("client connected", zap.String("remote", conn.RemoteAddr().String()))

	go s.writePump(c)
	s.readPump(c)
}

// readPump decodes client envelopes and dispatches them until the
// connection drops.
func (s *WebSocketServer) readPump(c *client) {
	defer s.dropClient(c)

	for {
		if s.cfg.Server.WebSocket.ReadTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(s.cfg.Server.WebSocket.ReadTimeout))
		}

		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("client read error", zap.Error(err))
			}
			return
		}
		s.dispatch(c, &msg)
	}
}

// writePump drains the send channel onto the connection.
func (s *WebSocketServer) writePump(c *client) {
	for msg := range c.send {
		if s.cfg.Server.WebSocket.WriteTimeout > 0 {
			c.conn.SetWriteDeadline(time.Now().Add(s.cfg.Server.WebSocket.WriteTimeout))
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			s.logger.Debug("client write error", zap.Error(err))
			break
		}
	}
	c.conn.Close()
}

// subscribe binds a client to a game. Held under the clients lock because
// the notification fan-out reads these fields from another goroutine.
func (s *WebSocketServer) subscribe(c *client, gameID string, seat int) {
	s.mu.Lock()
	c.gameID = gameID
	c.seat = seat
	s.mu.Unlock()
}

func (s *WebSocketServer) dropClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

// push queues a message for one client, dropping it when the client's
// buffer is full rather than blocking the caller. The read lock keeps
// dropClient from closing the channel mid-send.
func (s *WebSocketServer) push(c *client, msg serverMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.clients[c]; !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		s.logger.Warn("client send buffer full; dropping message",
			zap.String("type", msg.Type))
	}
}

func (s *WebSocketServer) pushError(c *client, format string, args ...interface{}) {
	s.push(c, serverMessage{Type: msgError, Error: fmt.Sprintf(format, args...)})
}

// handleNotification fans an engine notification out as fresh per-seat
// views to every subscriber of the game.
func (s *WebSocketServer) handleNotification(n game.GameNotification) {
	s.mu.RLock()
	subscribers := make([]*client, 0, len(s.clients))
	seats := make([]int, 0, len(s.clients))
	for c := range s.clients {
		if c.gameID == n.GameID {
			subscribers = append(subscribers, c)
			seats = append(seats, c.seat)
		}
	}
	s.mu.RUnlock()

	for i, c := range subscribers {
		view, err := s.engine.GetGameView(n.GameID, seats[i])
		if err != nil {
			continue
		}
		s.push(c, serverMessage{
			Type:   msgNotification,
			GameID: n.GameID,
			Event:  n.Type,
			View:   view,
		})
	}
}
