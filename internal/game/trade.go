package game

import (
	"fmt"
)

// handleTrade applies a bilateral exchange between the current player and a
// partner. The action itself is the initiator's confirmation; the partner
// is not asked to approve independently. Validation happens before any
// mutation, so the trade applies atomically or not at all.
func (gs *gameState) handleTrade(seat int, offer *TradeOffer) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	if err := gs.requireNoAuction(); err != nil {
		return err
	}
	if offer == nil {
		return fmt.Errorf("trade action carries no offer")
	}
	if offer.Partner == seat {
		return fmt.Errorf("cannot trade with yourself")
	}
	if offer.Partner < 0 || offer.Partner >= len(gs.players) {
		return fmt.Errorf("trade partner seat %d out of range", offer.Partner)
	}
	partner := gs.player(offer.Partner)
	if partner.Eliminated {
		return fmt.Errorf("trade partner has been eliminated")
	}

	for _, idx := range offer.GiveProperties {
		tile := gs.board.Tile(idx)
		if !tile.Ownable() || tile.Owner != seat {
			return fmt.Errorf("%s is not owned by the initiator", tile.Name)
		}
	}
	for _, idx := range offer.TakeProperties {
		tile := gs.board.Tile(idx)
		if !tile.Ownable() || tile.Owner != offer.Partner {
			return fmt.Errorf("%s is not owned by the trade partner", tile.Name)
		}
	}

	p := gs.player(seat)
	for _, idx := range offer.GiveProperties {
		gs.board.Tile(idx).Owner = offer.Partner
	}
	for _, idx := range offer.TakeProperties {
		gs.board.Tile(idx).Owner = seat
	}
	p.Balance -= offer.GiveCash
	partner.Balance += offer.GiveCash
	p.Balance += offer.TakeCash
	partner.Balance -= offer.TakeCash

	gs.addMessage("%s trades with %s: %d properties for %d properties, cash %d against %d",
		p.Name, partner.Name, len(offer.GiveProperties), len(offer.TakeProperties),
		offer.GiveCash, offer.TakeCash)

	// Acquiring the property you are standing on dissolves the rent owed
	// on it.
	if gs.pending != nil && gs.pending.Kind == decisionRent {
		if gs.board.Tile(gs.pending.TileIndex).Owner == gs.pending.Seat {
			gs.addMessage("%s now owns the property they occupy; the rent obligation is cleared",
				gs.player(gs.pending.Seat).Name)
			gs.pending = nil
		}
	}
	return nil
}
