package game

import (
	"fmt"

	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
)

func (gs *gameState) deck(id int) *cards.Deck {
	if id == cards.DeckChance {
		return gs.chance
	}
	return gs.chest
}

func (gs *gameState) deckName(id int) string {
	if id == cards.DeckChance {
		return "chance"
	}
	return "community chest"
}

// drawCard draws the top card of a deck for the player and resolves it.
// Cards that need a choice suspend as a pending decision; everything else
// resolves immediately and the card returns to the bottom of its deck.
func (gs *gameState) drawCard(p *playerState, deckID int) {
	card, err := gs.deck(deckID).Draw()
	if err != nil {
		gs.addMessage("the %s deck is empty", gs.deckName(deckID))
		return
	}

	text := card.RenderText(func(index int) string {
		return gs.board.Tile(index).Name
	})
	gs.addMessage("%s draws a %s card: %s", p.Name, gs.deckName(deckID), text)

	if card.Kind == cards.KindPayOrDraw {
		gs.pending = &pendingDecision{
			Kind:     decisionCard,
			Seat:     p.Seat,
			Amount:   card.Amounts[0],
			Card:     card,
			CardDeck: deckID,
		}
		gs.addPrompt(p.Seat, text, string(ActionCardPay), string(ActionCardDraw))
		return
	}

	gs.resolveCard(p, card)
	gs.deck(deckID).Requeue(card)
}

// handleCardChoice answers a pay-or-draw card: pay settles the amount,
// draw pulls the next card from the alternate deck.
func (gs *gameState) handleCardChoice(seat int, pay bool) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	decision, err := gs.decisionFor(seat, decisionCard)
	if err != nil {
		return err
	}

	p := gs.player(seat)
	card := decision.Card
	deckID := decision.CardDeck
	gs.pending = nil
	gs.deck(deckID).Requeue(card)

	if pay {
		gs.applyPayment(p, card)
		return nil
	}

	if len(card.Amounts) < 2 {
		return fmt.Errorf("card has no alternate deck to draw from")
	}
	gs.addMessage("%s refuses to pay and draws another card", p.Name)
	gs.drawCard(p, card.Amounts[1])
	return nil
}

// resolveCard applies a card effect that requires no choice.
func (gs *gameState) resolveCard(p *playerState, card *cards.Card) {
	switch card.Kind {
	case cards.KindAdvanceTo:
		dest := card.Amounts[0]
		if dest < 0 {
			dest = (p.Position - dest) % board.BoardSize
		}
		gs.moveTo(p, dest)
		gs.resolveLanding(p, gs.lastRoll.Sum())

	case cards.KindGoBackTo:
		dest := card.Amounts[0]
		if dest < 0 {
			dest = (p.Position + dest + board.BoardSize) % board.BoardSize
		}
		gs.moveTo(p, dest)
		gs.resolveLanding(p, gs.lastRoll.Sum())

	case cards.KindJail:
		gs.imprison(p)

	case cards.KindPay:
		gs.applyPayment(p, card)

	case cards.KindReceive:
		gs.applyReceipt(p, card)
	}
}

// applyPayment charges the player per the card: to every other active
// player, per building, or flat to the bank.
func (gs *gameState) applyPayment(p *playerState, card *cards.Card) {
	if card.TargetsPlayers {
		amount := card.Amounts[0]
		for _, other := range gs.players {
			if other.Seat == p.Seat || other.Eliminated {
				continue
			}
			other.Balance += amount
			p.Balance -= amount
		}
		gs.addMessage("%s pays %d to every other player", p.Name, amount)
		return
	}

	if len(card.Amounts) > 1 {
		houses, hotels := gs.buildingsOwned(p.Seat)
		total := card.Amounts[0]*houses + card.Amounts[1]*hotels
		p.Balance -= total
		gs.addMessage("%s pays %d for repairs (%d houses, %d hotels)", p.Name, total, houses, hotels)
		return
	}

	p.Balance -= card.Amounts[0]
	gs.addMessage("%s pays %d", p.Name, card.Amounts[0])
}

// applyReceipt credits the player per the card, from every other active
// player or from the bank.
func (gs *gameState) applyReceipt(p *playerState, card *cards.Card) {
	amount := card.Amounts[0]
	if card.TargetsPlayers {
		for _, other := range gs.players {
			if other.Seat == p.Seat || other.Eliminated {
				continue
			}
			other.Balance -= amount
			p.Balance += amount
		}
		gs.addMessage("%s collects %d from every other player", p.Name, amount)
		return
	}

	p.Balance += amount
	gs.addMessage("%s collects %d", p.Name, amount)
}

// buildingsOwned counts the seat's houses and hotels across the board.
func (gs *gameState) buildingsOwned(seat int) (houses, hotels int) {
	for _, tile := range gs.board.Tiles {
		if tile.Kind != board.TileResidence || tile.Owner != seat {
			continue
		}
		if tile.Houses == board.HotelHouseCount {
			hotels++
		} else {
			houses += tile.Houses
		}
	}
	return houses, hotels
}
