package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// GameState represents the lifecycle state of a game
type GameState int

const (
	GameStateInProgress GameState = iota
	GameStateFinished
)

var gameStateNames = map[GameState]string{
	GameStateInProgress: "IN_PROGRESS",
	GameStateFinished:   "FINISHED",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_%d", int(s))
}

// ActionType identifies a player action routed through ProcessAction
type ActionType string

const (
	ActionRoll              ActionType = "ROLL"
	ActionPayBail           ActionType = "PAY_BAIL"
	ActionStayJailed        ActionType = "STAY_JAILED"
	ActionBuy               ActionType = "BUY"
	ActionDeclineBuy        ActionType = "DECLINE_BUY"
	ActionPayRent           ActionType = "PAY_RENT"
	ActionBid               ActionType = "BID"
	ActionWithdraw          ActionType = "WITHDRAW"
	ActionCardPay           ActionType = "CARD_PAY"
	ActionCardDraw          ActionType = "CARD_DRAW"
	ActionBuildHouse        ActionType = "BUILD_HOUSE"
	ActionSellHouse         ActionType = "SELL_HOUSE"
	ActionToggleMortgage    ActionType = "TOGGLE_MORTGAGE"
	ActionTrade             ActionType = "TRADE"
	ActionDeclareBankruptcy ActionType = "DECLARE_BANKRUPTCY"
	ActionEndTurn           ActionType = "END_TURN"
)

// TradeOffer describes a bilateral exchange proposed by the current player.
// GiveProperties/GiveCash flow from the initiator to the partner,
// TakeProperties/TakeCash flow back.
type TradeOffer struct {
	Partner        int
	GiveProperties []int
	TakeProperties []int
	GiveCash       int
	TakeCash       int
}

// PlayerAction is a single request from a seat to the engine. TileIndex and
// Amount are interpreted per action type: the build/mortgage target, the
// absolute auction bid total.
type PlayerAction struct {
	Seat      int
	Type      ActionType
	TileIndex int
	Amount    int
	Trade     *TradeOffer
}

// GameNotification is pushed to the registered handler on state changes so
// transports can fan updates out to clients
type GameNotification struct {
	Type      string
	GameID    string
	Seat      int // target seat, -1 for broadcast
	Timestamp time.Time
	Data      map[string]interface{}
}

// NotificationHandler is a function that handles game notifications
type NotificationHandler func(notification GameNotification)

// GameOptions configures a new game
type GameOptions struct {
	// Players holds the display names, in seating order before any shuffle.
	Players  []string
	Settings config.GameSettings
	// Board overrides the embedded classic board when set.
	Board *board.Board
	// Roller overrides the random dice roller, for deterministic play.
	Roller rules.Roller
	// Seed drives seating and deck shuffles. Zero means time-seeded.
	Seed int64
}

// Engine is the rules engine. It owns every running game and is the single
// entry point for all player actions.
type Engine struct {
	logger              *zap.Logger
	mu                  sync.RWMutex
	games               map[string]*gameState
	notificationHandler NotificationHandler
}

// NewEngine creates a new engine instance
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
		games:  make(map[string]*gameState),
	}
}

// SetNotificationHandler sets the handler for game notifications.
// This allows external systems (UI, websockets) to receive real-time updates.
func (e *Engine) SetNotificationHandler(handler NotificationHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notificationHandler = handler
}

// emitNotification sends a notification to the registered handler. The
// handler runs in its own goroutine so it can safely call back into the
// engine (e.g. GetGameView) without deadlocking on game locks.
func (e *Engine) emitNotification(notification GameNotification) {
	e.mu.RLock()
	handler := e.notificationHandler
	e.mu.RUnlock()

	if handler != nil {
		go handler(notification)
	}
}

func (e *Engine) notifyStateChange(gameID string, data map[string]interface{}) {
	e.emitNotification(GameNotification{
		Type:      "GAME_STATE_CHANGE",
		GameID:    gameID,
		Seat:      -1,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (e *Engine) notifyDecision(gameID string, seat int, data map[string]interface{}) {
	e.emitNotification(GameNotification{
		Type:      "DECISION_REQUIRED",
		GameID:    gameID,
		Seat:      seat,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (e *Engine) notifyGameOver(gameID string, data map[string]interface{}) {
	e.emitNotification(GameNotification{
		Type:      "GAME_OVER",
		GameID:    gameID,
		Seat:      -1,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// CreateGame initializes a new game. Configuration problems (bad board,
// bad player count) are fatal here, before any turn starts.
func (e *Engine) CreateGame(gameID string, opts GameOptions) error {
	if gameID == "" {
		return fmt.Errorf("gameID is required")
	}
	if len(opts.Players) < 2 || len(opts.Players) > 6 {
		return fmt.Errorf("player count must be between 2 and 6, got %d", len(opts.Players))
	}

	b := opts.Board
	if b == nil {
		var err error
		b, err = board.LoadClassic()
		if err != nil {
			return fmt.Errorf("failed to load default board: %w", err)
		}
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	roller := opts.Roller
	if roller == nil {
		roller = rules.NewSeededRoller(seed)
	}

	gs := newGameState(gameID, b, opts.Settings, roller, rng)
	for i, name := range opts.Players {
		gs.players = append(gs.players, newPlayerState(i, name, opts.Settings))
		b.Tile(board.GoIndex).Arrive(i)
	}
	gs.order = rules.NewTurnOrder(len(opts.Players))
	if opts.Settings.ShuffleSeating {
		gs.order.Shuffle(rng)
	}
	if opts.Settings.ShuffleDecks {
		gs.chance.Shuffle(rng)
		gs.chest.Shuffle(rng)
	}
	gs.beginTurn()

	e.mu.Lock()
	if _, exists := e.games[gameID]; exists {
		e.mu.Unlock()
		return fmt.Errorf("game %s already exists", gameID)
	}
	e.games[gameID] = gs
	e.mu.Unlock()

	e.logger.Info("game created",
		zap.String("game_id", gameID),
		zap.Strings("players", opts.Players),
		zap.String("board", b.Name),
		zap.Int("first_seat", gs.order.Current()),
	)

	e.notifyStateChange(gameID, map[string]interface{}{
		"event":      "game_created",
		"first_seat": gs.order.Current(),
	})
	return nil
}

// gameFor looks up a game by ID.
func (e *Engine) gameFor(gameID string) (*gameState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	gs, ok := e.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s not found", gameID)
	}
	return gs, nil
}

// ProcessAction is the single entry point for player input. Every
// suspension point of a turn (purchase, rent, bail, auction bid, card
// choice) is answered through here.
func (e *Engine) ProcessAction(gameID string, action PlayerAction) error {
	gs, err := e.gameFor(gameID)
	if err != nil {
		return err
	}

	gs.mu.Lock()
	err = e.dispatch(gs, action)
	state := gs.state
	winner := gs.winner
	gs.mu.Unlock()

	if err != nil {
		e.logger.Debug("action rejected",
			zap.String("game_id", gameID),
			zap.Int("seat", action.Seat),
			zap.String("action_type", string(action.Type)),
			zap.Error(err),
		)
		return err
	}

	e.logger.Debug("action processed",
		zap.String("game_id", gameID),
		zap.Int("seat", action.Seat),
		zap.String("action_type", string(action.Type)),
	)

	if state == GameStateFinished {
		e.notifyGameOver(gameID, map[string]interface{}{"winner": winner})
	} else {
		e.notifyStateChange(gameID, map[string]interface{}{
			"event": "action_processed",
			"seat":  action.Seat,
			"type":  string(action.Type),
		})
	}
	return nil
}

// dispatch routes an action. Caller holds gs.mu.
func (e *Engine) dispatch(gs *gameState, action PlayerAction) error {
	if gs.state == GameStateFinished {
		return fmt.Errorf("game is finished")
	}
	if action.Seat < 0 || action.Seat >= len(gs.players) {
		return fmt.Errorf("seat %d out of range", action.Seat)
	}
	if gs.players[action.Seat].Eliminated {
		return fmt.Errorf("seat %d has been eliminated", action.Seat)
	}

	switch action.Type {
	case ActionRoll:
		return gs.handleRoll(action.Seat)
	case ActionPayBail:
		return gs.handlePayBail(action.Seat)
	case ActionStayJailed:
		return gs.handleStayJailed(action.Seat)
	case ActionBuy:
		return gs.handleBuy(action.Seat)
	case ActionDeclineBuy:
		return gs.handleDeclineBuy(action.Seat)
	case ActionPayRent:
		return gs.handlePayRent(action.Seat)
	case ActionBid:
		return gs.handleBid(action.Seat, action.Amount)
	case ActionWithdraw:
		return gs.handleWithdraw(action.Seat)
	case ActionCardPay:
		return gs.handleCardChoice(action.Seat, true)
	case ActionCardDraw:
		return gs.handleCardChoice(action.Seat, false)
	case ActionBuildHouse:
		return gs.handleBuildHouse(action.Seat, action.TileIndex)
	case ActionSellHouse:
		return gs.handleSellHouse(action.Seat, action.TileIndex)
	case ActionToggleMortgage:
		return gs.handleToggleMortgage(action.Seat, action.TileIndex)
	case ActionTrade:
		return gs.handleTrade(action.Seat, action.Trade)
	case ActionDeclareBankruptcy:
		return gs.handleDeclareBankruptcy(action.Seat)
	case ActionEndTurn:
		return gs.handleEndTurn(action.Seat)
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}

// GameCount returns the number of games the engine currently holds.
func (e *Engine) GameCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.games)
}

// EndGame removes a game from the engine.
func (e *Engine) EndGame(gameID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.games[gameID]; !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	delete(e.games, gameID)

	e.logger.Info("game removed", zap.String("game_id", gameID))
	return nil
}
