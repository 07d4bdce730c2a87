// Package cards implements the chance and community chest decks: cyclic
// card queues, card text rendering and the classic deck contents.
package cards

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Kind enumerates the closed set of card effects.
type Kind int

const (
	// KindAdvanceTo moves the player forward. Amounts[0] >= 0 is an
	// absolute board index; a negative value moves forward by that many
	// tiles from the current position.
	KindAdvanceTo Kind = iota
	// KindGoBackTo moves the player backward. Amounts[0] >= 0 is an
	// absolute board index reached without passing Go; a negative value
	// moves backward by that many tiles.
	KindGoBackTo
	// KindJail sends the player straight to jail.
	KindJail
	// KindPay charges the player. With TargetsPlayers the amount goes to
	// every other player; with two Amounts the charge is per building
	// (Amounts[0] per house, Amounts[1] per hotel); otherwise it is a
	// flat payment to the bank.
	KindPay
	// KindPayOrDraw lets the player choose between paying as KindPay and
	// drawing the next card from the deck identified by Amounts[1].
	KindPayOrDraw
	// KindReceive credits the player, from every other player when
	// TargetsPlayers is set, otherwise from the bank.
	KindReceive
)

var kindNames = map[Kind]string{
	KindAdvanceTo: "ADVANCE_TO",
	KindGoBackTo:  "GO_BACK_TO",
	KindJail:      "JAIL",
	KindPay:       "PAY",
	KindPayOrDraw: "PAY_OR_DRAW",
	KindReceive:   "RECEIVE",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CARD_%d", int(k))
}

// Deck identifiers, used by KindPayOrDraw cards to name the deck the
// alternative draw comes from.
const (
	DeckChance = 0
	DeckChest  = 1
)

// Card is a single chance or community chest card.
type Card struct {
	Kind Kind
	// TargetsPlayers directs a payment card at the other players rather
	// than the bank.
	TargetsPlayers bool
	// Amounts carries the card's operands; their meaning depends on Kind.
	Amounts []int
	// Text is the message shown when the card is drawn. Segments wrapped
	// in percent signs name board positions and are substituted at
	// render time.
	Text string
}

// RenderText produces the display text of a card. Percent-delimited
// numeric segments are replaced with the name of the board tile at that
// index, looked up through name.
func (c *Card) RenderText(name func(index int) string) string {
	parts := strings.Split(c.Text, "%")
	for i, part := range parts {
		index, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		parts[i] = name(index)
	}
	return strings.Join(parts, "")
}

// Deck is a cyclic queue of cards. A drawn card leaves the queue while it
// resolves and is requeued at the back afterwards, so the deck keeps its
// order across cycles.
type Deck struct {
	cards []*Card
}

// NewDeck builds a deck from an ordered card list.
func NewDeck(cards []*Card) *Deck {
	return &Deck{cards: cards}
}

// Shuffle randomises the deck order. Decks are shuffled once when a game
// starts and then cycle in fixed order.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. The caller requeues it once the
// card has resolved.
func (d *Deck) Draw() (*Card, error) {
	if len(d.cards) == 0 {
		return nil, fmt.Errorf("deck is empty")
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Requeue returns a resolved card to the bottom of the deck.
func (d *Deck) Requeue(card *Card) {
	d.cards = append(d.cards, card)
}

// Len returns the number of cards currently in the deck. A card being
// resolved is not counted.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the deck contents in draw order, for snapshots.
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}
