package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"math/rand"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
	"go.uber.org/zap"
)

const snapshotVersion = 1

// gameSnapshot is the serializable form of a game. Saves are gated to
// quiet points (no pending decision, no auction, no liquidation), so none
// of that transient state is captured.
type gameSnapshot struct {
	Version  int
	GameID   string
	Settings config.GameSettings
	Board    *board.Board
	Players  []*playerState
	Order    rules.TurnOrderSnapshot
	Chance   []*cards.Card
	Chest    []*cards.Card

	Pot            int
	TurnNumber     int
	RollsRemaining int
	DoubleCount    int
	LastRoll       rules.Roll
	State          GameState
	Winner         int
	SavedAt        time.Time
}

// Snapshot serializes a game to an opaque blob: gob encoded, zstd
// compressed, prefixed with a sha256 checksum for integrity verification
// on load. Saving is refused while any action is unresolved.
func (e *Engine) Snapshot(gameID string) ([]byte, error) {
	gs, err := e.gameFor(gameID)
	if err != nil {
		return nil, err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	if gs.pending != nil || gs.auction != nil || gs.liquidation != nil {
		return nil, fmt.Errorf("cannot save while actions are unresolved")
	}

	snapshot := &gameSnapshot{
		Version:        snapshotVersion,
		GameID:         gs.gameID,
		Settings:       gs.settings,
		Board:          gs.board,
		Players:        gs.players,
		Order:          gs.order.Snapshot(),
		Chance:         gs.chance.Cards(),
		Chest:          gs.chest.Cards(),
		Pot:            gs.pot,
		TurnNumber:     gs.turnNumber,
		RollsRemaining: gs.rollsRemaining,
		DoubleCount:    gs.doubleCount,
		LastRoll:       gs.lastRoll,
		State:          gs.state,
		Winner:         gs.winner,
		SavedAt:        time.Now(),
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(snapshot); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	compressed := encoder.EncodeAll(payload.Bytes(), nil)
	encoder.Close()

	checksum := sha256.Sum256(compressed)
	blob := make([]byte, 0, len(checksum)+len(compressed))
	blob = append(blob, checksum[:]...)
	blob = append(blob, compressed...)

	e.logger.Info("game snapshot taken",
		zap.String("game_id", gameID),
		zap.Int("blob_bytes", len(blob)),
	)
	return blob, nil
}

// decodeSnapshot verifies and unpacks a snapshot blob.
func decodeSnapshot(blob []byte) (*gameSnapshot, error) {
	if len(blob) < sha256.Size {
		return nil, fmt.Errorf("snapshot blob is truncated")
	}
	compressed := blob[sha256.Size:]
	checksum := sha256.Sum256(compressed)
	if !bytes.Equal(checksum[:], blob[:sha256.Size]) {
		return nil, fmt.Errorf("snapshot checksum mismatch")
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer decoder.Close()
	payload, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var snapshot gameSnapshot
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snapshot.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}
	return &snapshot, nil
}

// RestoreGame registers a game rebuilt from a snapshot blob under the
// given ID.
func (e *Engine) RestoreGame(gameID string, blob []byte) error {
	snapshot, err := decodeSnapshot(blob)
	if err != nil {
		return err
	}
	if err := snapshot.Board.Validate(); err != nil {
		return fmt.Errorf("snapshot carries an invalid board: %w", err)
	}

	seed := time.Now().UnixNano()
	gs := newGameState(gameID, snapshot.Board, snapshot.Settings,
		rules.NewSeededRoller(seed), rand.New(rand.NewSource(seed)))
	gs.players = snapshot.Players
	gs.order = rules.RestoreTurnOrder(snapshot.Order)
	gs.chance = cards.NewDeck(snapshot.Chance)
	gs.chest = cards.NewDeck(snapshot.Chest)
	gs.pot = snapshot.Pot
	gs.turnNumber = snapshot.TurnNumber
	gs.rollsRemaining = snapshot.RollsRemaining
	gs.doubleCount = snapshot.DoubleCount
	gs.lastRoll = snapshot.LastRoll
	gs.state = snapshot.State
	gs.winner = snapshot.Winner

	current := gs.player(gs.currentSeat())
	gs.addMessage("game restored from a save; it is %s's turn", current.Name)
	if gs.rollsRemaining > 0 {
		gs.addPrompt(current.Seat, "Roll the dice", string(ActionRoll))
	}

	e.mu.Lock()
	if _, exists := e.games[gameID]; exists {
		e.mu.Unlock()
		return fmt.Errorf("game %s already exists", gameID)
	}
	e.games[gameID] = gs
	e.mu.Unlock()

	e.logger.Info("game restored",
		zap.String("game_id", gameID),
		zap.Int("turn", gs.turnNumber),
	)
	return nil
}
