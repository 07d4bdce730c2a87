package game

import (
	"fmt"
)

// handleBuy confirms the purchase decision on the tile the player landed on.
func (gs *gameState) handleBuy(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	decision, err := gs.decisionFor(seat, decisionPurchase)
	if err != nil {
		return err
	}

	p := gs.player(seat)
	tile := gs.board.Tile(decision.TileIndex)
	if p.Balance < tile.Price {
		return fmt.Errorf("balance %d cannot cover the %d purchase price", p.Balance, tile.Price)
	}

	p.Balance -= tile.Price
	tile.Owner = seat
	gs.pending = nil
	gs.addMessage("%s purchases %s for %d", p.Name, tile.Name, tile.Price)
	return nil
}

// handleDeclineBuy declines the purchase. With auctions enabled the tile
// goes under the hammer, opening with the declining player.
func (gs *gameState) handleDeclineBuy(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	decision, err := gs.decisionFor(seat, decisionPurchase)
	if err != nil {
		return err
	}

	tile := gs.board.Tile(decision.TileIndex)
	gs.pending = nil
	gs.addMessage("%s declines to purchase %s", gs.player(seat).Name, tile.Name)

	if gs.settings.AuctionOnDecline {
		gs.startAuction(tile.Index, gs.order.ActiveSeats(seat))
	}
	return nil
}

// handlePayRent settles the open rent obligation. The payment is mandatory
// and may push the payer's balance negative; a negative balance then blocks
// turn completion until cured or bankruptcy is declared.
func (gs *gameState) handlePayRent(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	decision, err := gs.decisionFor(seat, decisionRent)
	if err != nil {
		return err
	}

	p := gs.player(seat)
	creditor := gs.player(decision.Creditor)
	p.Balance -= decision.Amount
	creditor.Balance += decision.Amount
	gs.pending = nil
	gs.addMessage("%s pays %s %d in rent", p.Name, creditor.Name, decision.Amount)

	if p.Balance < 0 {
		gs.addMessage("%s is %d in debt and must raise funds or declare bankruptcy", p.Name, -p.Balance)
		gs.addPrompt(seat, "Raise funds or declare bankruptcy",
			string(ActionSellHouse), string(ActionToggleMortgage), string(ActionDeclareBankruptcy))
	}
	return nil
}
