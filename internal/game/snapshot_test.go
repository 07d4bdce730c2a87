package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionBuy})
	h.MustAct(PlayerAction{Seat: 0, Type: ActionEndTurn})

	blob, err := h.engine.Snapshot(h.gameID)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	require.NoError(t, h.engine.RestoreGame("restored", blob))

	original := h.View(-1)
	restored, err := h.engine.GetGameView("restored", -1)
	require.NoError(t, err)

	assert.Equal(t, original.Turn, restored.Turn)
	assert.Equal(t, original.CurrentSeat, restored.CurrentSeat)
	assert.Equal(t, original.Pot, restored.Pot)
	for seat := 0; seat < 2; seat++ {
		assert.Equal(t, original.Players[seat].Balance, restored.Players[seat].Balance)
		assert.Equal(t, original.Players[seat].Position, restored.Players[seat].Position)
	}
	assert.Equal(t, 0, restored.Tiles[3].Owner)

	// The restored game plays on.
	err = h.engine.ProcessAction("restored", PlayerAction{Seat: 1, Type: ActionRoll})
	require.NoError(t, err)
}

func TestSnapshotRefusedWhileActionsUnresolved(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})

	h.MustRoll(0, 1, 2) // opens the purchase decision

	_, err := h.engine.Snapshot(h.gameID)
	require.Error(t, err)

	h.MustAct(PlayerAction{Seat: 0, Type: ActionBuy})
	_, err = h.engine.Snapshot(h.gameID)
	require.NoError(t, err, "a mid-turn save is fine once nothing is pending")
}

func TestSnapshotRefusedDuringAuction(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob", "Carol"})

	h.MustRoll(0, 1, 2)
	h.MustAct(PlayerAction{Seat: 0, Type: ActionDeclineBuy})

	_, err := h.engine.Snapshot(h.gameID)
	require.Error(t, err)
}

func TestRestoreRejectsCorruptBlobs(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.MustRoll(0, 1, 3)

	blob, err := h.engine.Snapshot(h.gameID)
	require.NoError(t, err)

	err = h.engine.RestoreGame("truncated", blob[:16])
	require.Error(t, err)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xff
	err = h.engine.RestoreGame("tampered", tampered)
	require.Error(t, err, "the checksum catches the flipped byte")
}

func TestRestoreRejectsDuplicateGameID(t *testing.T) {
	h := NewGameTestHarness(t, []string{"Alice", "Bob"})
	h.MustRoll(0, 1, 3)

	blob, err := h.engine.Snapshot(h.gameID)
	require.NoError(t, err)

	err = h.engine.RestoreGame(h.gameID, blob)
	require.Error(t, err)
}
