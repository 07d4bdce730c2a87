package server

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/openmonopoly/monopoly-server-go/internal/game"
	"github.com/openmonopoly/monopoly-server-go/internal/repository"
	"go.uber.org/zap"
)

const dbTimeout = 5 * time.Second

// dispatch routes one client envelope.
func (s *WebSocketServer) dispatch(c *client, msg *clientMessage) {
	switch msg.Type {
	case msgCreateGame:
		s.handleCreateGame(c, msg)
	case msgJoinGame:
		s.handleJoinGame(c, msg)
	case msgAction:
		s.handleAction(c, msg)
	case msgGetView:
		s.handleGetView(c)
	case msgSaveGame:
		s.handleSaveGame(c)
	case msgLoadGame:
		s.handleLoadGame(c, msg)
	case msgListSaves:
		s.handleListSaves(c)
	default:
		s.pushError(c, "unknown message type %q", msg.Type)
	}
}

// handleCreateGame starts a fresh game with the configured house rules and
// subscribes the creating client as seat 0.
func (s *WebSocketServer) handleCreateGame(c *client, msg *clientMessage) {
	if s.engine.GameCount() >= s.cfg.Server.MaxGames {
		s.pushError(c, "server is at its game limit")
		return
	}

	gameID := msg.GameID
	if gameID == "" {
		gameID = uuid.NewString()
	}

	err := s.engine.CreateGame(gameID, game.GameOptions{
		Players:  msg.Players,
		Settings: s.cfg.Game,
	})
	if err != nil {
		s.pushError(c, "failed to create game: %v", err)
		return
	}

	s.subscribe(c, gameID, 0)
	s.push(c, serverMessage{Type: msgGameCreated, GameID: gameID})
	s.pushView(c)
}

// handleJoinGame subscribes the client to an existing game as a seat, or as
// a spectator with a negative seat.
func (s *WebSocketServer) handleJoinGame(c *client, msg *clientMessage) {
	view, err := s.engine.GetGameView(msg.GameID, msg.Seat)
	if err != nil {
		s.pushError(c, "failed to join game: %v", err)
		return
	}

	s.subscribe(c, msg.GameID, msg.Seat)
	s.push(c, serverMessage{Type: msgJoined, GameID: msg.GameID, View: view})
}

func (s *WebSocketServer) handleAction(c *client, msg *clientMessage) {
	if c.gameID == "" {
		s.pushError(c, "join a game first")
		return
	}

	err := s.engine.ProcessAction(c.gameID, game.PlayerAction{
		Seat:      msg.Seat,
		Type:      game.ActionType(msg.Action),
		TileIndex: msg.TileIndex,
		Amount:    msg.Amount,
		Trade:     msg.tradeOffer(),
	})
	if err != nil {
		s.pushError(c, "%v", err)
		return
	}
	s.push(c, serverMessage{Type: msgActionOK, GameID: c.gameID})
}

func (s *WebSocketServer) handleGetView(c *client) {
	if c.gameID == "" {
		s.pushError(c, "join a game first")
		return
	}
	s.pushView(c)
}

func (s *WebSocketServer) pushView(c *client) {
	view, err := s.engine.GetGameView(c.gameID, c.seat)
	if err != nil {
		s.pushError(c, "failed to build view: %v", err)
		return
	}
	s.push(c, serverMessage{Type: msgView, GameID: c.gameID, View: view})
}

// handleSaveGame snapshots the client's game into the database. The engine
// refuses to snapshot while any action is unresolved.
func (s *WebSocketServer) handleSaveGame(c *client) {
	if s.saves == nil {
		s.pushError(c, "this server runs without persistence")
		return
	}
	if c.gameID == "" {
		s.pushError(c, "join a game first")
		return
	}

	blob, err := s.engine.Snapshot(c.gameID)
	if err != nil {
		s.pushError(c, "failed to snapshot game: %v", err)
		return
	}

	view, err := s.engine.GetGameView(c.gameID, -1)
	if err != nil {
		s.pushError(c, "failed to describe game: %v", err)
		return
	}
	players := make([]string, 0, len(view.Players))
	for _, p := range view.Players {
		players = append(players, p.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	err = s.saves.Save(ctx, &repository.SaveGame{
		GameID:  c.gameID,
		Players: players,
		Turn:    view.Turn,
		Blob:    blob,
	})
	if err != nil {
		s.logger.Error("failed to persist savegame",
			zap.String("game_id", c.gameID), zap.Error(err))
		s.pushError(c, "failed to persist savegame")
		return
	}
	s.push(c, serverMessage{Type: msgGameSaved, GameID: c.gameID})
}

// handleLoadGame restores a persisted game and subscribes the client to it.
func (s *WebSocketServer) handleLoadGame(c *client, msg *clientMessage) {
	if s.saves == nil {
		s.pushError(c, "this server runs without persistence")
		return
	}
	if msg.GameID == "" {
		s.pushError(c, "game_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	sg, err := s.saves.Load(ctx, msg.GameID)
	if errors.Is(err, repository.ErrNotFound) {
		s.pushError(c, "no savegame under id %s", msg.GameID)
		return
	}
	if err != nil {
		s.logger.Error("failed to load savegame",
			zap.String("game_id", msg.GameID), zap.Error(err))
		s.pushError(c, "failed to load savegame")
		return
	}

	if err := s.engine.RestoreGame(sg.GameID, sg.Blob); err != nil {
		s.pushError(c, "failed to restore game: %v", err)
		return
	}

	s.subscribe(c, sg.GameID, msg.Seat)
	s.push(c, serverMessage{Type: msgGameLoaded, GameID: sg.GameID})
	s.pushView(c)
}

func (s *WebSocketServer) handleListSaves(c *client) {
	if s.saves == nil {
		s.pushError(c, "this server runs without persistence")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	summaries, err := s.saves.List(ctx)
	if err != nil {
		s.logger.Error("failed to list savegames", zap.Error(err))
		s.pushError(c, "failed to list savegames")
		return
	}

	saves := make([]saveSummary, 0, len(summaries))
	for _, sg := range summaries {
		saves = append(saves, saveSummary{
			GameID:    sg.GameID,
			Players:   sg.Players,
			Turn:      sg.Turn,
			UpdatedAt: sg.UpdatedAt.Format(time.RFC3339),
		})
	}
	s.push(c, serverMessage{Type: msgSaveList, Saves: saves})
}
