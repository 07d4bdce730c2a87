package game

import (
	"fmt"

	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
)

// startAuction opens an auction for a tile with the given bidder rotation.
// An auction that is already decided (one or zero eligible bidders) settles
// on the spot.
func (gs *gameState) startAuction(tileIndex int, bidders []int) {
	tile := gs.board.Tile(tileIndex)
	gs.auction = rules.NewAuction(tileIndex, bidders)
	gs.auctionTile = tileIndex
	gs.addMessage("%s goes up for auction", tile.Name)

	if gs.auction.Finished() {
		gs.settleAuction()
		return
	}
	gs.addPrompt(gs.auction.CurrentBidder(), fmt.Sprintf("Bid on %s or withdraw", tile.Name),
		string(ActionBid), string(ActionWithdraw))
}

// handleBid records a raise. Amount is the bidder's new running total; it
// must strictly exceed the current maximum and stay within their balance.
func (gs *gameState) handleBid(seat int, amount int) error {
	if gs.auction == nil {
		return fmt.Errorf("no auction in progress")
	}
	p := gs.player(seat)
	if err := gs.auction.RaiseTo(seat, amount, p.Balance); err != nil {
		return err
	}
	gs.addMessage("%s raises the bid to %d", p.Name, gs.auction.MaximumBid())
	gs.promptNextBidder()
	return nil
}

// handleWithdraw removes the seat from the auction; the last bidder left
// standing wins.
func (gs *gameState) handleWithdraw(seat int) error {
	if gs.auction == nil {
		return fmt.Errorf("no auction in progress")
	}
	if err := gs.auction.Withdraw(seat); err != nil {
		return err
	}
	gs.addMessage("%s withdraws from the auction", gs.player(seat).Name)

	if gs.auction.Finished() {
		gs.settleAuction()
		return nil
	}
	gs.promptNextBidder()
	return nil
}

func (gs *gameState) promptNextBidder() {
	tile := gs.board.Tile(gs.auctionTile)
	gs.addPrompt(gs.auction.CurrentBidder(),
		fmt.Sprintf("Bid on %s or withdraw (current maximum %d)", tile.Name, gs.auction.MaximumBid()),
		string(ActionBid), string(ActionWithdraw))
}

// settleAuction transfers the tile to the winner at the accumulated
// maximum bid, then resumes whatever triggered the auction: either the
// declined-purchase turn, or the next lot of a bankruptcy liquidation.
func (gs *gameState) settleAuction() {
	tile := gs.board.Tile(gs.auctionTile)
	winner, ok := gs.auction.Winner()
	price := gs.auction.MaximumBid()
	gs.auction = nil
	gs.auctionTile = board.NoOwner

	if ok {
		w := gs.player(winner)
		w.Balance -= price
		tile.Owner = winner
		gs.addMessage("%s wins the auction for %s at %d", w.Name, tile.Name, price)
	} else {
		// Everyone withdrew before bidding; the tile stays with the bank.
		tile.Owner = board.NoOwner
		gs.addMessage("nobody bid on %s; it remains unowned", tile.Name)
	}

	if gs.liquidation != nil {
		gs.continueLiquidation()
	}
}
