package game

import (
	"fmt"

	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
)

// handleDeclareBankruptcy liquidates the current player. It is legal only
// when the player is insolvent: a negative balance, or an open rent debt
// their balance cannot cover.
func (gs *gameState) handleDeclareBankruptcy(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	if err := gs.requireNoAuction(); err != nil {
		return err
	}

	p := gs.player(seat)
	unpaidRent := gs.pending != nil && gs.pending.Kind == decisionRent && gs.pending.Seat == seat
	if p.Balance >= 0 && !(unpaidRent && p.Balance < gs.pending.Amount) {
		return fmt.Errorf("seat %d is solvent and cannot declare bankruptcy", seat)
	}

	// The creditor is the owner of the occupied property when rent went
	// unpaid; otherwise the bank.
	creditor := board.NoOwner
	if unpaidRent {
		creditor = gs.pending.Creditor
	}
	// A suspended pay-or-draw card goes back to its deck; decks stay whole.
	if gs.pending != nil && gs.pending.Card != nil {
		gs.deck(gs.pending.CardDeck).Requeue(gs.pending.Card)
	}
	gs.pending = nil
	gs.addMessage("%s declares bankruptcy", p.Name)

	// Demolish everything first, crediting half the construction cost.
	for _, tile := range gs.board.Tiles {
		if tile.Kind != board.TileResidence || tile.Owner != seat || tile.Houses == 0 {
			continue
		}
		refund := tile.HouseCost * tile.Houses / 2
		p.Balance += refund
		tile.Houses = 0
		gs.addMessage("houses on %s are demolished for %d", tile.Name, refund)
	}

	if creditor != board.NoOwner {
		gs.settleToCreditor(p, gs.player(creditor))
		return nil
	}
	gs.startLiquidation(p)
	return nil
}

// settleToCreditor hands every asset of the debtor to the creditor player
// and eliminates the debtor.
func (gs *gameState) settleToCreditor(debtor, creditor *playerState) {
	for _, tile := range gs.board.Tiles {
		if tile.Ownable() && tile.Owner == debtor.Seat {
			tile.Owner = creditor.Seat
		}
	}
	creditor.Balance += debtor.Balance
	debtor.Balance = 0
	gs.addMessage("%s receives all of %s's assets", creditor.Name, debtor.Name)
	gs.eliminate(debtor)
}

// startLiquidation queues every property of a bank-bankrupt debtor for
// auction. Lots are sold strictly one at a time; the next auction starts
// only when the previous one has settled, and the debtor's seat is
// eliminated only after the last lot resolves.
func (gs *gameState) startLiquidation(debtor *playerState) {
	var queue []int
	for _, tile := range gs.board.Tiles {
		if tile.Ownable() && tile.Owner == debtor.Seat {
			queue = append(queue, tile.Index)
		}
	}
	gs.liquidation = &liquidationState{debtor: debtor.Seat, queue: queue}
	gs.addMessage("the bank seizes %s's assets; %d properties go to auction", debtor.Name, len(queue))
	gs.continueLiquidation()
}

// continueLiquidation starts the next queued auction, or finishes the
// liquidation when the queue has drained.
func (gs *gameState) continueLiquidation() {
	liq := gs.liquidation
	if len(liq.queue) == 0 {
		gs.finishLiquidation()
		return
	}

	next := liq.queue[0]
	liq.queue = liq.queue[1:]

	// The debtor sits the auctions out; rotation starts with the seat
	// after them.
	var bidders []int
	for _, seat := range gs.order.ActiveSeats(liq.debtor) {
		if seat != liq.debtor {
			bidders = append(bidders, seat)
		}
	}
	gs.startAuction(next, bidders)
}

// finishLiquidation discards the debtor's remaining cash, eliminates the
// seat and passes the turn.
func (gs *gameState) finishLiquidation() {
	debtor := gs.player(gs.liquidation.debtor)
	gs.liquidation = nil
	debtor.Balance = 0
	gs.eliminate(debtor)
}

// eliminate flags the seat as out of the game, removes the piece from the
// board and rotates the turn, declaring a winner when one seat remains.
func (gs *gameState) eliminate(p *playerState) {
	p.Eliminated = true
	gs.order.Eliminate(p.Seat)
	gs.board.Tile(p.Position).Depart(p.Seat)
	gs.addMessage("%s has been eliminated", p.Name)
	gs.advanceTurn()
}
