package board

import "fmt"

// RentOwed computes the rent due on a tile. It is a pure function of the
// board, the tile and the dice sum of the roll that caused the landing; the
// caller freezes that sum at landing time so later rolls in the same turn
// cannot change a utility's rent.
//
// Calling this for an unowned or mortgaged tile is a caller bug: the landing
// resolution gates rent obligations before they reach here.
func RentOwed(b *Board, index int, diceSum int) (int, error) {
	tile := b.Tiles[index]
	if !tile.Ownable() {
		return 0, fmt.Errorf("tile %q (%s) cannot charge rent", tile.Name, tile.Kind)
	}
	if !tile.Owned() {
		return 0, fmt.Errorf("rent requested on unowned tile %q", tile.Name)
	}
	if tile.Mortgaged {
		return 0, fmt.Errorf("rent requested on mortgaged tile %q", tile.Name)
	}

	switch tile.Kind {
	case TileResidence:
		if tile.Houses == 0 {
			// An undeveloped residence earns double rent when its owner
			// holds the complete set, mortgaged members included.
			if b.SetComplete(tile.Set, tile.Owner) {
				return tile.Rent[0] * 2, nil
			}
			return tile.Rent[0], nil
		}
		return tile.Rent[tile.Houses], nil

	case TileStation:
		owned := b.OwnedInSet(StationSet, tile.Owner, true)
		if owned < 1 || owned > len(b.StationRent) {
			return 0, fmt.Errorf("no station rent entry for %d stations", owned)
		}
		return b.StationRent[owned-1], nil

	case TileUtility:
		owned := b.OwnedInSet(UtilitySet, tile.Owner, true)
		if owned < 1 || owned > len(b.UtilityMultipliers) {
			return 0, fmt.Errorf("no utility multiplier entry for %d utilities", owned)
		}
		return b.UtilityMultipliers[owned-1] * diceSum, nil
	}

	return 0, fmt.Errorf("unhandled tile kind %s", tile.Kind)
}
