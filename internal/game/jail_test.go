package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJailbreakDoubleKeepsRemainingRoll(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.Imprison(0)

	h.MustRoll(0, 2, 2)

	p := h.Player(0)
	assert.False(t, p.Jailed)
	assert.Equal(t, 14, p.Position)
	assert.Equal(t, 1, h.GetGameState().rollsRemaining, "the escape does not consume the roll")

	h.MustAct(PlayerAction{Seat: 0, Type: ActionBuy})
	h.MustRoll(0, 1, 3)
	assert.Equal(t, 18, p.Position)
}

func TestJailRollFailureBurnsTurn(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.Imprison(0)

	h.MustRoll(0, 1, 2)

	p := h.Player(0)
	assert.True(t, p.Jailed)
	assert.Equal(t, 1, p.JailedTurns)
	assert.Equal(t, 0, h.GetGameState().rollsRemaining)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
	assert.Equal(t, 1, h.View(-1).CurrentSeat)
}

func TestThirdFailedAttemptForcesBailDecision(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.Imprison(0)
	h.SetJailedTurns(0, 2)

	h.MustRoll(0, 1, 2)

	view := h.View(-1)
	require.NotNil(t, view.Decision)
	assert.Equal(t, "BAIL", view.Decision.Kind)
	assert.Equal(t, 50, view.Decision.Amount)

	err := h.Act(PlayerAction{Seat: 0, Type: ActionEndTurn})
	require.Error(t, err, "the bail decision blocks the turn")

	h.MustAct(PlayerAction{Seat: 0, Type: ActionPayBail})
	p := h.Player(0)
	assert.False(t, p.Jailed)
	assert.Equal(t, 1250, p.Balance)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestStayJailedAnswersForcedDecision(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.Imprison(0)
	h.SetJailedTurns(0, 2)

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionStayJailed})

	p := h.Player(0)
	assert.True(t, p.Jailed)
	assert.Equal(t, 1300, p.Balance)
	assert.Nil(t, h.View(-1).Decision)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestForcedBailRequiresFunds(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.Imprison(0)
	h.SetJailedTurns(0, 2)
	h.SetBalance(0, 10)

	h.MustRoll(0, 1, 2)

	err := h.Act(PlayerAction{Seat: 0, Type: ActionPayBail})
	require.Error(t, err, "10 cannot cover the release fee")

	h.MustAct(PlayerAction{Seat: 0, Type: ActionStayJailed})
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})
}

func TestVoluntaryBailBeforeRolling(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.Imprison(0)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionPayBail})

	p := h.Player(0)
	assert.False(t, p.Jailed)
	assert.Equal(t, 1250, p.Balance)

	h.MustRoll(0, 1, 3)
	assert.Equal(t, 14, p.Position)
}

func TestBailRejectedWhenNotJailed(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})

	err := h.Act(PlayerAction{Seat: 0, Type: ActionPayBail})
	require.Error(t, err)

	err = h.Act(PlayerAction{Seat: 0, Type: ActionStayJailed})
	require.Error(t, err)
}
