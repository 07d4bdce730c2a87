package game

import (
	"testing"

	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
	"go.uber.org/zap/zaptest"
)

// GameTestHarness provides utilities for driving deterministic game
// scenarios: a scripted dice roller, fixed seating and unshuffled decks.
type GameTestHarness struct {
	t      *testing.T
	engine *Engine
	roller *rules.ScriptedRoller
	gameID string
}

// NewGameTestHarness creates a game with deterministic settings. mutate
// functions, when given, adjust the settings before the game is created.
func NewGameTestHarness(t *testing.T, players []string, mutate ...func(*config.GameSettings)) *GameTestHarness {
	logger := zaptest.NewLogger(t)
	engine := NewEngine(logger)
	roller := rules.NewScriptedRoller()

	settings := config.DefaultGameSettings()
	settings.ShuffleSeating = false
	settings.ShuffleDecks = false
	for _, m := range mutate {
		m(&settings)
	}

	gameID := "test-game"
	if err := engine.CreateGame(gameID, GameOptions{
		Players:  players,
		Settings: settings,
		Roller:   roller,
		Seed:     1,
	}); err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	return &GameTestHarness{
		t:      t,
		engine: engine,
		roller: roller,
		gameID: gameID,
	}
}

// GetGameState returns the internal game state for direct manipulation.
func (h *GameTestHarness) GetGameState() *gameState {
	h.engine.mu.RLock()
	gs := h.engine.games[h.gameID]
	h.engine.mu.RUnlock()
	return gs
}

// Script appends rolls to the dice script.
func (h *GameTestHarness) Script(rolls ...rules.Roll) {
	h.roller.Push(rolls...)
}

// Act submits an action and returns the engine's verdict.
func (h *GameTestHarness) Act(action PlayerAction) error {
	return h.engine.ProcessAction(h.gameID, action)
}

// MustAct submits an action that the scenario requires to succeed.
func (h *GameTestHarness) MustAct(action PlayerAction) {
	h.t.Helper()
	if err := h.Act(action); err != nil {
		h.t.Fatalf("action %s by seat %d failed: %v", action.Type, action.Seat, err)
	}
}

// MustRoll scripts one throw and submits the roll action for the seat.
func (h *GameTestHarness) MustRoll(seat, first, second int) {
	h.t.Helper()
	h.Script(rules.Roll{First: first, Second: second})
	h.MustAct(PlayerAction{Seat: seat, Type: ActionRoll})
}

// Player returns the seat's ledger.
func (h *GameTestHarness) Player(seat int) *playerState {
	return h.GetGameState().player(seat)
}

// Tile returns the board tile at an index.
func (h *GameTestHarness) Tile(index int) *board.Tile {
	return h.GetGameState().board.Tile(index)
}

// View fetches the game view for a seat.
func (h *GameTestHarness) View(seat int) *EngineGameView {
	h.t.Helper()
	view, err := h.engine.GetGameView(h.gameID, seat)
	if err != nil {
		h.t.Fatalf("failed to get game view: %v", err)
	}
	return view
}

// SetBalance overwrites a seat's balance.
func (h *GameTestHarness) SetBalance(seat, balance int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.player(seat).Balance = balance
}

// PlacePlayer relocates a seat's piece without triggering landing effects.
func (h *GameTestHarness) PlacePlayer(seat, position int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p := gs.player(seat)
	gs.board.Tile(p.Position).Depart(seat)
	p.Position = position
	gs.board.Tile(position).Arrive(seat)
}

// Imprison puts a seat in jail directly.
func (h *GameTestHarness) Imprison(seat int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	p := gs.player(seat)
	gs.board.Tile(p.Position).Depart(seat)
	p.Position = board.JailIndex
	gs.board.Tile(board.JailIndex).Arrive(seat)
	p.Jailed = true
	p.JailedTurns = 0
}

// SetJailedTurns overwrites the failed-attempt counter of a jailed seat.
func (h *GameTestHarness) SetJailedTurns(seat, turns int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.player(seat).JailedTurns = turns
}

// GrantTile hands a property to a seat without payment.
func (h *GameTestHarness) GrantTile(seat, index int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.board.Tile(index).Owner = seat
}

// SetHouses overwrites the building count on a residence.
func (h *GameTestHarness) SetHouses(index, houses int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.board.Tile(index).Houses = houses
}

// SetMortgaged flags a property as mortgaged without the cash movement.
func (h *GameTestHarness) SetMortgaged(index int, mortgaged bool) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.board.Tile(index).Mortgaged = mortgaged
}

// RotateDeck cycles n cards from the top of a deck to its bottom, so a test
// can line up a known card to be drawn next.
func (h *GameTestHarness) RotateDeck(deckID, n int) {
	gs := h.GetGameState()
	gs.mu.Lock()
	defer gs.mu.Unlock()
	deck := gs.chance
	if deckID == cards.DeckChest {
		deck = gs.chest
	}
	for i := 0; i < n; i++ {
		card, err := deck.Draw()
		if err != nil {
			h.t.Fatalf("failed to rotate deck: %v", err)
		}
		deck.Requeue(card)
	}
}
