package game

import (
	"fmt"

	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
	"github.com/openmonopoly/monopoly-server-go/internal/game/rules"
)

// handleRoll resolves one dice roll for the current player: jail attempts,
// doubles accounting, movement and landing resolution.
func (gs *gameState) handleRoll(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	if err := gs.requireNoAuction(); err != nil {
		return err
	}
	if gs.pending != nil {
		return fmt.Errorf("resolve the pending %s decision before rolling", gs.pending.Kind)
	}
	if gs.rollsRemaining <= 0 {
		return fmt.Errorf("no rolls remaining this turn")
	}

	p := gs.player(seat)
	roll := gs.roller.Roll()
	gs.lastRoll = roll
	gs.addMessage("%s rolls %d and %d", p.Name, roll.First, roll.Second)

	if p.Jailed {
		return gs.resolveJailRoll(p, roll)
	}

	if roll.IsDouble() {
		gs.doubleCount++
		if gs.doubleCount == 3 {
			// Third consecutive double: straight to jail, the pending
			// move is cancelled.
			gs.addMessage("%s rolled three consecutive doubles and is sent to jail", p.Name)
			gs.imprison(p)
			return nil
		}
	} else {
		gs.rollsRemaining--
	}

	dest := (p.Position + roll.Sum()) % board.BoardSize
	gs.moveTo(p, dest)
	gs.resolveLanding(p, roll.Sum())
	return nil
}

// resolveJailRoll handles a roll made from jail. A double frees the player
// and moves them without consuming the remaining roll; a failure burns the
// turn, and the third failure opens the forced bail decision.
func (gs *gameState) resolveJailRoll(p *playerState, roll rules.Roll) error {
	if roll.IsDouble() {
		gs.addMessage("%s rolls a double and breaks out of jail", p.Name)
		p.Jailed = false
		p.JailedTurns = 0
		gs.doubleCount++

		dest := (p.Position + roll.Sum()) % board.BoardSize
		gs.moveTo(p, dest)
		gs.resolveLanding(p, roll.Sum())
		return nil
	}

	p.JailedTurns++
	gs.rollsRemaining--
	if p.JailedTurns >= 3 {
		fee := gs.settings.JailReleaseFee
		gs.pending = &pendingDecision{
			Kind:   decisionBail,
			Seat:   p.Seat,
			Amount: fee,
		}
		gs.addMessage("%s has run out of chances to roll a double and must decide on the %d release fee", p.Name, fee)
		gs.addPrompt(p.Seat, "Pay the release fee or remain jailed",
			string(ActionPayBail), string(ActionStayJailed))
		return nil
	}

	gs.addMessage("%s fails to roll a double and stays in jail (%d attempts left)", p.Name, 3-p.JailedTurns)
	return nil
}

// handlePayBail settles bail, either as the forced decision after three
// failed attempts or voluntarily before rolling.
func (gs *gameState) handlePayBail(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	if err := gs.requireNoAuction(); err != nil {
		return err
	}
	p := gs.player(seat)
	fee := gs.settings.JailReleaseFee

	if gs.pending != nil {
		if _, err := gs.decisionFor(seat, decisionBail); err != nil {
			return err
		}
		if p.Balance < fee {
			return fmt.Errorf("balance %d cannot cover the %d release fee", p.Balance, fee)
		}
		p.Balance -= fee
		p.Jailed = false
		p.JailedTurns = 0
		gs.pending = nil
		gs.addMessage("%s pays the %d release fee and leaves jail", p.Name, fee)
		return nil
	}

	// Voluntary bail before rolling.
	if !p.Jailed {
		return fmt.Errorf("seat %d is not jailed", seat)
	}
	if gs.rollsRemaining <= 0 {
		return fmt.Errorf("no roll remains this turn")
	}
	if p.Balance < fee {
		return fmt.Errorf("balance %d cannot cover the %d release fee", p.Balance, fee)
	}
	p.Balance -= fee
	p.Jailed = false
	p.JailedTurns = 0
	gs.addMessage("%s pays the %d release fee and leaves jail", p.Name, fee)
	gs.addPrompt(seat, "Roll the dice", string(ActionRoll))
	return nil
}

// handleStayJailed answers the forced bail decision by remaining in jail.
func (gs *gameState) handleStayJailed(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	if _, err := gs.decisionFor(seat, decisionBail); err != nil {
		return err
	}
	p := gs.player(seat)
	gs.pending = nil
	gs.addMessage("%s remains in jail", p.Name)
	return nil
}

// moveTo relocates a player and applies lap bonuses: a wrap that does not
// finish on Go earns the pass-go amount; landing exactly on Go earns the
// multiplied salary instead.
func (gs *gameState) moveTo(p *playerState, dest int) {
	from := p.Position
	gs.board.Tile(from).Depart(p.Seat)
	p.Position = dest
	gs.board.Tile(dest).Arrive(p.Seat)

	if dest < from && dest != board.GoIndex {
		bonus := gs.settings.PassGoAmount
		p.Balance += bonus
		gs.addMessage("%s passes Go and collects %d", p.Name, bonus)
	}
}

// imprison relocates a player to jail, clearing any remaining roll.
func (gs *gameState) imprison(p *playerState) {
	gs.board.Tile(p.Position).Depart(p.Seat)
	p.Position = board.JailIndex
	gs.board.Tile(board.JailIndex).Arrive(p.Seat)
	p.Jailed = true
	p.JailedTurns = 0
	gs.rollsRemaining = 0
	gs.doubleCount = 0
}

// resolveLanding dispatches on the tile the player finished their move on.
// diceSum is the roll that caused the landing; utility rent is frozen
// against it here.
func (gs *gameState) resolveLanding(p *playerState, diceSum int) {
	tile := gs.board.Tile(p.Position)

	switch tile.Kind {
	case board.TileGo:
		bonus := gs.settings.PassGoAmount * gs.settings.PassGoMultiplier
		p.Balance += bonus
		gs.addMessage("%s lands on Go and collects %d", p.Name, bonus)

	case board.TileTax:
		p.Balance -= tile.TaxAmount
		gs.pot += tile.TaxAmount
		gs.addMessage("%s pays %d in %s", p.Name, tile.TaxAmount, tile.Name)

	case board.TileFreeParking:
		if gs.settings.FreeParkingCollectsTaxes && gs.pot > 0 {
			p.Balance += gs.pot
			gs.addMessage("%s collects %d from free parking", p.Name, gs.pot)
			gs.pot = 0
		}

	case board.TileGoToJail:
		gs.addMessage("%s is sent to jail", p.Name)
		gs.imprison(p)

	case board.TileJail:
		// Just visiting.

	case board.TileChance:
		gs.drawCard(p, cards.DeckChance)

	case board.TileCommunityChest:
		gs.drawCard(p, cards.DeckChest)

	case board.TileResidence, board.TileStation, board.TileUtility:
		gs.resolvePropertyLanding(p, tile, diceSum)
	}
}

// resolvePropertyLanding opens the purchase or rent obligation for an
// ownable tile, or records that no rent is due.
func (gs *gameState) resolvePropertyLanding(p *playerState, tile *board.Tile, diceSum int) {
	if !tile.Owned() {
		gs.pending = &pendingDecision{
			Kind:      decisionPurchase,
			Seat:      p.Seat,
			TileIndex: tile.Index,
			Amount:    tile.Price,
		}
		gs.addMessage("%s may purchase %s for %d", p.Name, tile.Name, tile.Price)
		gs.addPrompt(p.Seat, fmt.Sprintf("Buy %s for %d?", tile.Name, tile.Price),
			string(ActionBuy), string(ActionDeclineBuy))
		return
	}

	owner := gs.player(tile.Owner)
	if tile.Owner == p.Seat {
		return
	}
	if tile.Mortgaged {
		gs.addMessage("%s is mortgaged; no rent is due", tile.Name)
		return
	}
	if owner.Jailed && !gs.settings.RentWhileJailed {
		gs.addMessage("%s is in jail; no rent is due on %s", owner.Name, tile.Name)
		return
	}

	rent, err := board.RentOwed(gs.board, tile.Index, diceSum)
	if err != nil {
		// Gating above is supposed to make this unreachable.
		gs.addMessage("rent on %s could not be determined: %v", tile.Name, err)
		return
	}
	gs.pending = &pendingDecision{
		Kind:      decisionRent,
		Seat:      p.Seat,
		TileIndex: tile.Index,
		Amount:    rent,
		Creditor:  tile.Owner,
	}
	gs.addMessage("%s owes %s %d in rent for %s", p.Name, owner.Name, rent, tile.Name)
	gs.addPrompt(p.Seat, fmt.Sprintf("Pay %d rent to %s", rent, owner.Name), string(ActionPayRent))
}

// handleEndTurn completes the turn if nothing is outstanding and rotates
// to the next seat.
func (gs *gameState) handleEndTurn(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	if gs.auction != nil {
		return fmt.Errorf("an auction is in progress")
	}
	if gs.pending != nil {
		return fmt.Errorf("the pending %s decision must be resolved first", gs.pending.Kind)
	}
	if gs.rollsRemaining > 0 {
		return fmt.Errorf("a roll remains this turn")
	}
	if p := gs.player(seat); p.Balance < 0 {
		return fmt.Errorf("balance is negative (%d): raise funds or declare bankruptcy", p.Balance)
	}

	gs.addMessage("%s ends their turn", gs.player(seat).Name)
	gs.advanceTurn()
	return nil
}
