package board

import "fmt"

// BoardSize is the number of tiles on a standard board.
const BoardSize = 40

// Fixed corner positions. Every board has exactly these four corners.
const (
	GoIndex          = 0
	JailIndex        = 10
	FreeParkingIndex = 20
	GoToJailIndex    = 30
)

// Global building supply when the limited-supply setting is enabled.
const (
	HouseSupply = 32
	HotelSupply = 12
)

// HotelHouseCount is the house counter value that represents a hotel.
const HotelHouseCount = 5

// NoOwner marks an unowned tile. Ownership is recorded as a seat index into
// the game's player arena rather than an object reference.
const NoOwner = -1

// TileKind enumerates the closed set of board tile variants.
type TileKind int

const (
	TileGo TileKind = iota
	TileJail
	TileFreeParking
	TileGoToJail
	TileChance
	TileCommunityChest
	TileTax
	TileResidence
	TileStation
	TileUtility
)

var tileKindNames = map[TileKind]string{
	TileGo:             "GO",
	TileJail:           "JAIL",
	TileFreeParking:    "FREE_PARKING",
	TileGoToJail:       "GO_TO_JAIL",
	TileChance:         "CHANCE",
	TileCommunityChest: "COMMUNITY_CHEST",
	TileTax:            "TAX",
	TileResidence:      "RESIDENCE",
	TileStation:        "STATION",
	TileUtility:        "UTILITY",
}

func (k TileKind) String() string {
	if name, ok := tileKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TILE_%d", int(k))
}

// Ownable reports whether tiles of this kind can be purchased.
func (k TileKind) Ownable() bool {
	return k == TileResidence || k == TileStation || k == TileUtility
}

// Tile is a single board location. The static fields come from the board
// description; the mutable fields are per-game state owned by the engine.
type Tile struct {
	Index int
	Kind  TileKind
	Name  string
	Set   string
	Price int
	Hex   string

	// Residence only: rent by house count (index 0-4 houses, 5 hotel) and
	// the per-building construction price.
	Rent      []int
	HouseCost int

	// Tax only.
	TaxAmount int

	// Utility only.
	Symbol string

	// Mutable per-game state.
	Owner     int
	Mortgaged bool
	Houses    int
	Occupants []int
}

// Ownable reports whether this tile can be purchased.
func (t *Tile) Ownable() bool {
	return t.Kind.Ownable()
}

// Owned reports whether the tile has been purchased.
func (t *Tile) Owned() bool {
	return t.Owner != NoOwner
}

// Arrive adds a seat to the tile's occupant list.
func (t *Tile) Arrive(seat int) {
	t.Occupants = append(t.Occupants, seat)
}

// Depart removes a seat from the tile's occupant list.
func (t *Tile) Depart(seat int) {
	for i, s := range t.Occupants {
		if s == seat {
			t.Occupants = append(t.Occupants[:i], t.Occupants[i+1:]...)
			return
		}
	}
}

// Board is the ordered sequence of 40 tiles plus the set index and the
// board-level rent tables. One Board instance belongs to one game.
type Board struct {
	Name     string
	Creator  string
	Language string

	Tiles [BoardSize]*Tile

	// Sets maps a set name to the tile indexes of its member residences.
	// Stations and utilities live under their reserved set names.
	Sets map[string][]int

	StationRent        []int
	UtilityMultipliers []int
}

// Reserved set names for the non-residence property groups.
const (
	StationSet = "Stations"
	UtilitySet = "Utilities"
)

// Tile returns the tile at a board index.
func (b *Board) Tile(index int) *Tile {
	return b.Tiles[index]
}

// OwnedInSet counts the properties of a set owned by the seat. With
// unmortgagedOnly, mortgaged holdings are skipped; that variant feeds the
// station and utility rent tables.
func (b *Board) OwnedInSet(set string, seat int, unmortgagedOnly bool) int {
	count := 0
	for _, idx := range b.Sets[set] {
		tile := b.Tiles[idx]
		if tile.Owner != seat {
			continue
		}
		if unmortgagedOnly && tile.Mortgaged {
			continue
		}
		count++
	}
	return count
}

// SetComplete reports whether the seat owns every residence in the set.
// Mortgaged members still count towards completion.
func (b *Board) SetComplete(set string, seat int) bool {
	members := b.Sets[set]
	if len(members) == 0 {
		return false
	}
	return b.OwnedInSet(set, seat, false) == len(members)
}

// HousesAvailable returns how many houses remain in the bank's supply.
// Hotels do not consume houses.
func (b *Board) HousesAvailable() int {
	remaining := HouseSupply
	for _, tile := range b.Tiles {
		if tile.Kind == TileResidence && tile.Houses < HotelHouseCount {
			remaining -= tile.Houses
		}
	}
	return remaining
}

// HotelsAvailable returns how many hotels remain in the bank's supply.
func (b *Board) HotelsAvailable() int {
	remaining := HotelSupply
	for _, tile := range b.Tiles {
		if tile.Kind == TileResidence && tile.Houses == HotelHouseCount {
			remaining--
		}
	}
	return remaining
}

// Validate checks the structural invariants of an assembled board: all 40
// slots filled, the four corners in place, and rent tables complete.
func (b *Board) Validate() error {
	for i, tile := range b.Tiles {
		if tile == nil {
			return fmt.Errorf("board slot %d is empty", i)
		}
		if tile.Index != i {
			return fmt.Errorf("tile %q carries index %d but sits at slot %d", tile.Name, tile.Index, i)
		}
		if tile.Kind == TileResidence && len(tile.Rent) != HotelHouseCount+1 {
			return fmt.Errorf("residence %q has %d rent entries, want %d", tile.Name, len(tile.Rent), HotelHouseCount+1)
		}
	}
	corners := map[int]TileKind{
		GoIndex:          TileGo,
		JailIndex:        TileJail,
		FreeParkingIndex: TileFreeParking,
		GoToJailIndex:    TileGoToJail,
	}
	for idx, kind := range corners {
		if b.Tiles[idx].Kind != kind {
			return fmt.Errorf("expected %s at corner %d, found %s", kind, idx, b.Tiles[idx].Kind)
		}
	}
	if len(b.Sets[StationSet]) > 0 && len(b.StationRent) < len(b.Sets[StationSet]) {
		return fmt.Errorf("station rent table has %d entries for %d stations", len(b.StationRent), len(b.Sets[StationSet]))
	}
	if len(b.Sets[UtilitySet]) > 0 && len(b.UtilityMultipliers) < len(b.Sets[UtilitySet]) {
		return fmt.Errorf("utility multiplier table has %d entries for %d utilities", len(b.UtilityMultipliers), len(b.Sets[UtilitySet]))
	}
	return nil
}
