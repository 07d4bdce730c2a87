package game

import (
	"time"

	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
)

// EngineGameView is the complete game state as shown to one seat. The game
// has no hidden per-player information beyond deck order, so views differ
// only in which prompts they carry.
type EngineGameView struct {
	GameID         string
	State          GameState
	Turn           int
	CurrentSeat    int
	Winner         int
	Pot            int
	LastRoll       [2]int
	RollsRemaining int
	CanEndTurn     bool
	Players        []EnginePlayerView
	Tiles          []EngineTileView
	Decision       *EngineDecisionView
	Auction        *EngineAuctionView
	Messages       []EngineMessage
	Prompts        []EnginePrompt
	StartedAt      time.Time
}

// EnginePlayerView is one seat's public ledger.
type EnginePlayerView struct {
	Seat        int
	Name        string
	Balance     int
	Position    int
	Jailed      bool
	JailedTurns int
	Eliminated  bool
}

// EngineTileView is one board location with its live state.
type EngineTileView struct {
	Index     int
	Kind      string
	Name      string
	Set       string
	Price     int
	Hex       string
	Owner     int
	Mortgaged bool
	Houses    int
	Occupants []int
}

// EngineDecisionView describes the suspension point a turn is blocked on.
type EngineDecisionView struct {
	Kind      string
	Seat      int
	TileIndex int
	Amount    int
	Text      string
}

// EngineAuctionView describes a running auction.
type EngineAuctionView struct {
	TileIndex     int
	CurrentBidder int
	MaximumBid    int
	Bids          []rules.BidRecord
}

// GetGameView builds the view of a game for one seat. Pass a negative seat
// for the spectator view carrying every prompt.
func (e *Engine) GetGameView(gameID string, seat int) (*EngineGameView, error) {
	gs, err := e.gameFor(gameID)
	if err != nil {
		return nil, err
	}

	gs.mu.RLock()
	defer gs.mu.RUnlock()

	view := &EngineGameView{
		GameID:         gs.gameID,
		State:          gs.state,
		Turn:           gs.turnNumber,
		CurrentSeat:    gs.currentSeat(),
		Winner:         gs.winner,
		Pot:            gs.pot,
		LastRoll:       [2]int{gs.lastRoll.First, gs.lastRoll.Second},
		RollsRemaining: gs.rollsRemaining,
		CanEndTurn:     gs.turnComplete(),
		StartedAt:      gs.startedAt,
	}

	for _, p := range gs.players {
		view.Players = append(view.Players, EnginePlayerView{
			Seat:        p.Seat,
			Name:        p.Name,
			Balance:     p.Balance,
			Position:    p.Position,
			Jailed:      p.Jailed,
			JailedTurns: p.JailedTurns,
			Eliminated:  p.Eliminated,
		})
	}

	for _, tile := range gs.board.Tiles {
		view.Tiles = append(view.Tiles, EngineTileView{
			Index:     tile.Index,
			Kind:      tile.Kind.String(),
			Name:      tile.Name,
			Set:       tile.Set,
			Price:     tile.Price,
			Hex:       tile.Hex,
			Owner:     tile.Owner,
			Mortgaged: tile.Mortgaged,
			Houses:    tile.Houses,
			Occupants: append([]int(nil), tile.Occupants...),
		})
	}

	if gs.pending != nil {
		view.Decision = &EngineDecisionView{
			Kind:      gs.pending.Kind.String(),
			Seat:      gs.pending.Seat,
			TileIndex: gs.pending.TileIndex,
			Amount:    gs.pending.Amount,
		}
		if gs.pending.Card != nil {
			view.Decision.Text = gs.pending.Card.RenderText(func(index int) string {
				return gs.board.Tile(index).Name
			})
		}
	}

	if gs.auction != nil {
		view.Auction = &EngineAuctionView{
			TileIndex:     gs.auctionTile,
			CurrentBidder: gs.auction.CurrentBidder(),
			MaximumBid:    gs.auction.MaximumBid(),
			Bids:          append([]rules.BidRecord(nil), gs.auction.Bids()...),
		}
	}

	view.Messages = append(view.Messages, gs.messages...)
	for _, prompt := range gs.prompts {
		if seat < 0 || prompt.Seat == seat {
			view.Prompts = append(view.Prompts, prompt)
		}
	}

	return view, nil
}
