package game

import (
	"testing"

	"github.com/openmonopoly/monopoly-server-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolventPlayerCannotDeclareBankruptcy(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})

	err := h.Act(PlayerAction{Seat: 0, Type: ActionDeclareBankruptcy})
	require.Error(t, err)
}

func TestBankruptcyHandsEverythingToTheCreditor(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 39)
	h.GrantTile(0, 1)
	h.GrantTile(0, 3)
	h.SetHouses(3, 2)
	h.SetBalance(0, 10)
	h.PlacePlayer(0, 36)

	h.MustRoll(0, 1, 2)
	view := h.View(-1)
	require.NotNil(t, view.Decision)
	require.Equal(t, 50, view.Decision.Amount)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclareBankruptcy})

	debtor := h.Player(0)
	creditor := h.Player(1)
	assert.True(t, debtor.Eliminated)
	assert.Equal(t, 0, debtor.Balance)

	// The two houses came down at half cost before the handover, so the
	// creditor receives 10 + 50 in cash plus the bare properties.
	assert.Equal(t, 1360, creditor.Balance)
	assert.Equal(t, 1, h.Tile(1).Owner)
	assert.Equal(t, 1, h.Tile(3).Owner)
	assert.Equal(t, 0, h.Tile(3).Houses)

	finalView := h.View(-1)
	assert.Equal(t, GameStateFinished, finalView.State)
	assert.Equal(t, 1, finalView.Winner)
}

func TestBankBankruptcyAuctionsEachPropertyInTurn(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob", "Carol"})
	h.GrantTile(0, 1)
	h.GrantTile(0, 3)
	h.GrantTile(0, 6)
	h.SetBalance(0, 100)

	h.MustRoll(0, 1, 3) // income tax pushes the balance to -100
	require.Equal(t, -100, h.Player(0).Balance)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclareBankruptcy})

	// First lot. The debtor sits the auctions out.
	view := h.View(-1)
	require.NotNil(t, view.Auction)
	assert.Equal(t, 1, view.Auction.TileIndex)
	assert.Equal(t, 1, view.Auction.CurrentBidder)
	err := h.Act(PlayerAction{Seat: 0, Type: ActionBid, Amount: 10})
	require.Error(t, err)

	h.MustAct(PlayerAction{Seat: 1, Type: ActionBid, Amount: 30})
	h.MustAct(PlayerAction{Seat: 2, Type: ActionWithdraw})
	assert.Equal(t, 1, h.Tile(1).Owner)
	assert.Equal(t, 1270, h.Player(1).Balance)
	assert.False(t, h.Player(0).Eliminated, "elimination waits for the last lot")

	// Second lot starts on its own.
	view = h.View(-1)
	require.NotNil(t, view.Auction)
	assert.Equal(t, 3, view.Auction.TileIndex)
	h.MustAct(PlayerAction{Seat: 1, Type: ActionWithdraw})
	assert.Equal(t, 2, h.Tile(3).Owner, "the last seat standing takes the lot")
	assert.False(t, h.Player(0).Eliminated)

	// Third lot.
	view = h.View(-1)
	require.NotNil(t, view.Auction)
	assert.Equal(t, 6, view.Auction.TileIndex)
	h.MustAct(PlayerAction{Seat: 1, Type: ActionBid, Amount: 40})
	h.MustAct(PlayerAction{Seat: 2, Type: ActionBid, Amount: 60})
	h.MustAct(PlayerAction{Seat: 1, Type: ActionWithdraw})
	assert.Equal(t, 2, h.Tile(6).Owner)
	assert.Equal(t, 1240, h.Player(2).Balance)

	// Queue drained: the debtor's debt is discarded and the seat goes out.
	debtor := h.Player(0)
	assert.True(t, debtor.Eliminated)
	assert.Equal(t, 0, debtor.Balance)
	assert.NotContains(t, h.Tile(4).Occupants, 0)

	view = h.View(-1)
	assert.Equal(t, GameStateInProgress, view.State)
	assert.Equal(t, 1, view.CurrentSeat)

	err = h.Act(PlayerAction{Seat: 0, Type: ActionRoll})
	require.Error(t, err, "an eliminated seat cannot act")
}

func TestBankruptcyWithNoPropertiesEliminatesImmediately(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 39)
	h.SetBalance(0, 10)
	h.PlacePlayer(0, 36)

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionPayRent})
	require.Equal(t, -40, h.Player(0).Balance)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclareBankruptcy})

	// Rent was already settled, so the bank is the creditor; with nothing
	// to auction the elimination is immediate and the survivor wins.
	view := h.View(-1)
	assert.True(t, h.Player(0).Eliminated)
	assert.Equal(t, GameStateFinished, view.State)
	assert.Equal(t, 1, view.Winner)
}

func TestBankruptcyReturnsSuspendedCardToDeck(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.RotateDeck(cards.DeckChance, 10)
	h.PlacePlayer(0, 4)
	h.SetBalance(0, -5)

	h.MustRoll(0, 1, 2)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	require.Equal(t, "CARD", view.Decision.Kind)
	require.Equal(t, 13, h.GetGameState().chance.Len(), "the drawn card is held by the decision")

	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclareBankruptcy})

	assert.True(t, h.Player(0).Eliminated)
	assert.Equal(t, 14, h.GetGameState().chance.Len(), "the suspended card returns to its deck")
}

func TestFinishedGameRejectsActions(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 39)
	h.SetBalance(0, 10)
	h.PlacePlayer(0, 36)

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclareBankruptcy})
	require.Equal(t, GameStateFinished, h.View(-1).State)

	err := h.Act(PlayerAction{Seat: 1, Type: ActionRoll})
	require.Error(t, err)
}
