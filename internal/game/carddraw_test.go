package game

import (
	"testing"

	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanceAdvanceToGo(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.PlacePlayer(0, 4)

	h.MustRoll(0, 1, 2) // lands on chance; the unshuffled deck leads with "advance to Go"

	p := h.Player(0)
	assert.Equal(t, board.GoIndex, p.Position)
	assert.Equal(t, 1500, p.Balance, "the landing salary, without a stacked wrap bonus")
	assert.Equal(t, 14, h.GetGameState().chance.Len(), "the card returns to the deck")
}

func TestChanceAdvanceIntoRent(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 4) // "take a trip" to the first station
	h.GrantTile(1, 5)
	h.PlacePlayer(0, 4)

	h.MustRoll(0, 1, 2)

	p := h.Player(0)
	assert.Equal(t, 5, p.Position)
	assert.Equal(t, 1500, p.Balance, "the backward card move still passes Go")

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, "RENT", view.Decision.Kind)
	assert.Equal(t, 25, view.Decision.Amount)
}

func TestChanceGoBackThreeSpaces(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 5)
	h.PlacePlayer(0, 19)

	h.MustRoll(0, 1, 2) // chance at 22, then back three to Vine Street

	p := h.Player(0)
	assert.Equal(t, 19, p.Position)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, "PURCHASE", view.Decision.Kind)
	assert.Equal(t, 19, view.Decision.TileIndex)
}

func TestChanceJailCard(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 6)
	h.PlacePlayer(0, 4)

	h.MustRoll(0, 1, 2)

	p := h.Player(0)
	assert.True(t, p.Jailed)
	assert.Equal(t, board.JailIndex, p.Position)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestChanceRepairsChargePerBuilding(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 7)
	h.GrantTile(0, 1)
	h.GrantTile(0, 3)
	h.SetHouses(1, board.HotelHouseCount)
	h.SetHouses(3, 3)
	h.PlacePlayer(0, 4)

	h.MustRoll(0, 1, 2)

	// 3 houses at 25 each plus one hotel at 100.
	assert.Equal(t, 1125, h.Player(0).Balance)
}

func TestPayOrDrawPaysTheFine(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 10)
	h.PlacePlayer(0, 4)

	h.MustRoll(0, 1, 2)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, "CARD", view.Decision.Kind)

	err := h.Act(PlayerAction{Seat: 0, Type: ActionEndTurn})
	require.Error(t, err, "the card choice blocks the turn")

	h.MustAct(PlayerAction{Seat: 0, Type: ActionCardPay})
	assert.Equal(t, 1290, h.Player(0).Balance)
	assert.Equal(t, 14, h.GetGameState().chance.Len())
}

func TestPayOrDrawPullsFromAlternateDeck(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 10)
	h.PlacePlayer(0, 4)

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionCardDraw})

	// The community chest deck leads with "advance to Go".
	p := h.Player(0)
	assert.Equal(t, board.GoIndex, p.Position)
	assert.Equal(t, 1500, p.Balance)
}

func TestChestBirthdayCollectsFromEveryPlayer(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob", "Carol"})
	h.RotateDeck(cards.DeckChest, 10)
	h.PlacePlayer(0, 14)

	h.MustRoll(0, 1, 2)

	assert.Equal(t, 1320, h.Player(0).Balance)
	assert.Equal(t, 1290, h.Player(1).Balance)
	assert.Equal(t, 1290, h.Player(2).Balance)
}

func TestDeckCyclesInDrawOrder(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})

	// Two chance landings in a row draw consecutive cards: "advance to Go"
	// and then "advance to Trafalgar Square".
	h.PlacePlayer(0, 4)
	h.MustRoll(0, 1, 2)
	require.Equal(t, board.GoIndex, h.Player(0).Position)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})

	h.PlacePlayer(1, 4)
	h.MustRoll(1, 1, 2)
	p := h.Player(1)
	assert.Equal(t, 24, p.Position)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, "PURCHASE", view.Decision.Kind)
	assert.Equal(t, 24, view.Decision.TileIndex)
}
