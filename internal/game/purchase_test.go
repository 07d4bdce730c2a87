package game

import (
	"testing"

	"github.com/openmonopoly/monopoly-server-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyProperty(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionBuy})

	tile := h.Tile(3)
	assert.Equal(t, 0, tile.Owner)
	assert.Equal(t, 1240, h.Player(0).Balance)
	assert.Nil(t, h.View(-1).Decision)
}

func TestBuyRequiresFunds(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.SetBalance(0, 50)

	h.MustRoll(0, 1, 2)
	err := h.Act(PlayerAction{Seat: 0, Type: ActionBuy})
	require.Error(t, err, "50 cannot cover the 60 price")
	assert.False(t, h.Tile(3).Owned())
}

func TestDeclineWithoutAuctionLeavesTileUnowned(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"}, func(s *config.GameSettings) {
		s.AuctionOnDecline = false
	})

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclineBuy})

	assert.False(t, h.Tile(3).Owned())
	assert.Nil(t, h.View(-1).Auction)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestRentOwedOnOccupiedProperty(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 3)

	h.MustRoll(0, 1, 2)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, "RENT", view.Decision.Kind)
	assert.Equal(t, 4, view.Decision.Amount)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionPayRent})
	assert.Equal(t, 1296, h.Player(0).Balance)
	assert.Equal(t, 1304, h.Player(1).Balance)
}

func TestCompleteSetDoublesBaseRent(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 1)
	h.GrantTile(1, 3)

	h.MustRoll(0, 1, 2)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, 8, view.Decision.Amount)
}

func TestMortgagedPropertyChargesNoRent(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 3)
	h.SetMortgaged(3, true)

	h.MustRoll(0, 1, 2)

	assert.Nil(t, h.View(-1).Decision)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestJailedOwnerCollectsNoRentWhenDisabled(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"}, func(s *config.GameSettings) {
		s.RentWhileJailed = false
	})
	h.GrantTile(1, 3)
	h.Imprison(1)

	h.MustRoll(0, 1, 2)

	assert.Nil(t, h.View(-1).Decision)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestOwnLandingCostsNothing(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(0, 3)

	h.MustRoll(0, 1, 2)

	assert.Nil(t, h.View(-1).Decision)
	assert.Equal(t, 1300, h.Player(0).Balance)
}

func TestRentDebtBlocksEndTurn(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 39)
	h.PlacePlayer(0, 36)
	h.SetBalance(0, 10)

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionPayRent})

	p := h.Player(0)
	assert.Equal(t, -40, p.Balance)
	err := h.Act(PlayerAction{Seat: 0, Type: ActionEndTurn})
	require.Error(t, err, "a negative balance blocks turn completion")
}

func TestUtilityRentFrozenAgainstLandingRoll(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.GrantTile(1, 12)
	h.PlacePlayer(0, 8)

	h.MustRoll(0, 1, 3)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, 16, view.Decision.Amount, "4x the landing roll with one utility held")
}
