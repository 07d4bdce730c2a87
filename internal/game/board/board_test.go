package board

import "testing"

func TestOccupants(t *testing.T) {
	b := testBoard(t)
	tile := b.Tile(GoIndex)

	tile.Arrive(0)
	tile.Arrive(1)
	tile.Arrive(2)
	tile.Depart(1)

	if len(tile.Occupants) != 2 {
		t.Fatalf("occupant count = %d, want 2", len(tile.Occupants))
	}
	if tile.Occupants[0] != 0 || tile.Occupants[1] != 2 {
		t.Errorf("occupants = %v, want [0 2]", tile.Occupants)
	}

	// Departing a seat that is not present is a no-op.
	tile.Depart(7)
	if len(tile.Occupants) != 2 {
		t.Errorf("occupant count after bogus depart = %d, want 2", len(tile.Occupants))
	}
}

func TestSetComplete(t *testing.T) {
	b := testBoard(t)

	b.Tile(1).Owner = 0
	if b.SetComplete("Brown", 0) {
		t.Error("SetComplete with one of two members")
	}

	b.Tile(3).Owner = 0
	if !b.SetComplete("Brown", 0) {
		t.Error("!SetComplete with both members owned")
	}
	if b.SetComplete("Brown", 1) {
		t.Error("SetComplete for a seat owning nothing")
	}

	b.Tile(3).Mortgaged = true
	if !b.SetComplete("Brown", 0) {
		t.Error("mortgaging a member broke set completion")
	}

	if b.SetComplete("No Such Set", 0) {
		t.Error("SetComplete for an unknown set")
	}
}

func TestBuildingSupply(t *testing.T) {
	b := testBoard(t)

	if got := b.HousesAvailable(); got != HouseSupply {
		t.Errorf("HousesAvailable() = %d, want %d", got, HouseSupply)
	}
	if got := b.HotelsAvailable(); got != HotelSupply {
		t.Errorf("HotelsAvailable() = %d, want %d", got, HotelSupply)
	}

	b.Tile(1).Houses = 4
	b.Tile(3).Houses = HotelHouseCount

	if got := b.HousesAvailable(); got != HouseSupply-4 {
		t.Errorf("HousesAvailable() = %d, want %d", got, HouseSupply-4)
	}
	if got := b.HotelsAvailable(); got != HotelSupply-1 {
		t.Errorf("HotelsAvailable() = %d, want %d", got, HotelSupply-1)
	}
}

func TestValidateCatchesCorruption(t *testing.T) {
	b := testBoard(t)
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() on classic board: %v", err)
	}

	b.Tiles[5].Index = 6
	if err := b.Validate(); err == nil {
		t.Error("Validate() missed an index mismatch")
	}
	b.Tiles[5].Index = 5

	b.Tiles[GoToJailIndex].Kind = TileTax
	if err := b.Validate(); err == nil {
		t.Error("Validate() missed a replaced corner")
	}
}
