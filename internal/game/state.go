package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
)

// decisionKind identifies the suspension point a turn is blocked on.
type decisionKind int

const (
	decisionPurchase decisionKind = iota
	decisionRent
	decisionBail
	decisionCard
)

var decisionKindNames = map[decisionKind]string{
	decisionPurchase: "PURCHASE",
	decisionRent:     "RENT",
	decisionBail:     "BAIL",
	decisionCard:     "CARD",
}

func (k decisionKind) String() string {
	if name, ok := decisionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DECISION_%d", int(k))
}

// pendingDecision is an open obligation blocking turn completion. Exactly
// one decision can be open at a time; the auction runs through its own
// state instead.
type pendingDecision struct {
	Kind      decisionKind
	Seat      int
	TileIndex int
	// Amount is the rent owed (frozen at landing time), the bail fee, or
	// the card payment.
	Amount int
	// Creditor is the seat rent is owed to.
	Creditor int
	// Card fields, for pay-or-draw choices.
	Card     *cards.Card
	CardDeck int
}

// liquidationState tracks a bankruptcy-to-bank liquidation: the remaining
// properties queue up and are auctioned strictly one after another. The
// debtor's seat is eliminated only once the queue drains.
type liquidationState struct {
	debtor int
	queue  []int
}

// playerState is one seat's ledger: balance, position and jail status.
// Property ownership lives on the tiles, keyed by seat index.
type playerState struct {
	Seat        int
	Name        string
	Balance     int
	Position    int
	Jailed      bool
	JailedTurns int
	Eliminated  bool
}

// newPlayerState seeds a player on Go. The opening balance holds back one
// Go salary, which the player earns back by completing their first lap.
func newPlayerState(seat int, name string, settings config.GameSettings) *playerState {
	return &playerState{
		Seat:     seat,
		Name:     name,
		Balance:  settings.StartingBalance - settings.PassGoAmount*settings.PassGoMultiplier,
		Position: board.GoIndex,
	}
}

// EngineMessage represents a game log message
type EngineMessage struct {
	Text      string
	Timestamp time.Time
}

// EnginePrompt represents a prompt for player input
type EnginePrompt struct {
	Seat      int
	Text      string
	Options   []string
	Timestamp time.Time
}

// gameState represents the internal state of one game. All mutation happens
// under mu, driven by the engine's dispatch.
type gameState struct {
	gameID   string
	state    GameState
	settings config.GameSettings
	board    *board.Board
	players  []*playerState
	order    *rules.TurnOrder
	roller   rules.Roller
	rng      *rand.Rand
	chance   *cards.Deck
	chest    *cards.Deck

	// Per-turn state.
	lastRoll       rules.Roll
	rollsRemaining int
	doubleCount    int

	pending     *pendingDecision
	auction     *rules.Auction
	auctionTile int
	liquidation *liquidationState

	// pot accumulates tax payments for the free-parking payout rule.
	pot int

	turnNumber int
	winner     int
	messages   []EngineMessage
	prompts    []EnginePrompt
	startedAt  time.Time
	mu         sync.RWMutex
}

func newGameState(gameID string, b *board.Board, settings config.GameSettings, roller rules.Roller, rng *rand.Rand) *gameState {
	return &gameState{
		gameID:      gameID,
		state:       GameStateInProgress,
		settings:    settings,
		board:       b,
		roller:      roller,
		rng:         rng,
		chance:      cards.ClassicChance(),
		chest:       cards.ClassicChest(),
		auctionTile: board.NoOwner,
		winner:      board.NoOwner,
		messages:    make([]EngineMessage, 0),
		prompts:     make([]EnginePrompt, 0),
		startedAt:   time.Now(),
	}
}

func (gs *gameState) currentSeat() int {
	return gs.order.Current()
}

func (gs *gameState) player(seat int) *playerState {
	return gs.players[seat]
}

// addMessage appends to the game log, trimming old entries.
func (gs *gameState) addMessage(format string, args ...interface{}) {
	gs.messages = append(gs.messages, EngineMessage{
		Text:      fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
	})
	if len(gs.messages) > 200 {
		gs.messages = gs.messages[len(gs.messages)-200:]
	}
}

// addPrompt records a prompt for the given seat.
func (gs *gameState) addPrompt(seat int, text string, options ...string) {
	gs.prompts = append(gs.prompts, EnginePrompt{
		Seat:      seat,
		Text:      text,
		Options:   options,
		Timestamp: time.Now(),
	})
	if len(gs.prompts) > 50 {
		gs.prompts = gs.prompts[len(gs.prompts)-50:]
	}
}

// beginTurn resets per-turn state for the current seat.
func (gs *gameState) beginTurn() {
	gs.turnNumber++
	gs.rollsRemaining = 1
	gs.doubleCount = 0
	gs.pending = nil

	current := gs.player(gs.currentSeat())
	gs.addMessage("%s's turn begins", current.Name)
	gs.addPrompt(current.Seat, "Roll the dice", string(ActionRoll))
}

// requireCurrent rejects actions from anyone but the current player.
func (gs *gameState) requireCurrent(seat int) error {
	if seat != gs.currentSeat() {
		return fmt.Errorf("seat %d acted out of turn (current seat is %d)", seat, gs.currentSeat())
	}
	return nil
}

// requireNoAuction rejects turn actions while an auction is running.
func (gs *gameState) requireNoAuction() error {
	if gs.auction != nil {
		return fmt.Errorf("an auction is in progress")
	}
	return nil
}

// decisionFor returns the open decision if it matches the seat and kind.
func (gs *gameState) decisionFor(seat int, kind decisionKind) (*pendingDecision, error) {
	if gs.pending == nil {
		return nil, fmt.Errorf("no pending %s decision", kind)
	}
	if gs.pending.Kind != kind {
		return nil, fmt.Errorf("pending decision is %s, not %s", gs.pending.Kind, kind)
	}
	if gs.pending.Seat != seat {
		return nil, fmt.Errorf("decision belongs to seat %d", gs.pending.Seat)
	}
	return gs.pending, nil
}

// turnComplete reports whether the current player may end their turn:
// nothing pending, no roll remaining, and a non-negative balance. A
// negative balance is itself one unresolved action, cured only by raising
// funds or declaring bankruptcy.
func (gs *gameState) turnComplete() bool {
	if gs.pending != nil || gs.auction != nil || gs.liquidation != nil {
		return false
	}
	if gs.rollsRemaining > 0 {
		return false
	}
	return gs.player(gs.currentSeat()).Balance >= 0
}

// finishGame marks the game over with the given winner.
func (gs *gameState) finishGame(winner int) {
	gs.state = GameStateFinished
	gs.winner = winner
	gs.addMessage("%s wins the game", gs.player(winner).Name)
}

// advanceTurn rotates to the next active seat, ending the game when only
// one player remains.
func (gs *gameState) advanceTurn() {
	if winner, over := gs.order.Winner(); over {
		gs.finishGame(winner)
		return
	}
	gs.order.Advance()
	gs.beginTurn()
}
