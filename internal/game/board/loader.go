package board

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed board.schema.json
var boardSchemaSource string

//go:embed classic_board.json
var classicBoardSource []byte

var boardSchema = jsonschema.MustCompileString("board.schema.json", boardSchemaSource)

// boardFile mirrors the on-disk board description. The file lists the 36
// configurable tiles; the four corners are fixed and added during assembly.
type boardFile struct {
	Name       string                      `json:"name"`
	Creator    string                      `json:"creator"`
	Language   string                      `json:"language"`
	Residences map[string][]residenceEntry `json:"residences"`
	Stations   []propertyEntry             `json:"stations"`
	Utilities  []utilityEntry              `json:"utilities"`
	Chance     []int                       `json:"chance_indexes"`
	Chest      []int                       `json:"chest_indexes"`
	Taxes      []taxEntry                  `json:"taxes"`

	StationRent        []int `json:"stations_rent"`
	UtilityMultipliers []int `json:"utility_multipliers"`
}

type residenceEntry struct {
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Price     int    `json:"price"`
	Hex       string `json:"hex"`
	Rent      []int  `json:"rent"`
	HouseCost int    `json:"house_cost"`
}

type propertyEntry struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Price    int    `json:"price"`
	Hex      string `json:"hex"`
}

type utilityEntry struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Price    int    `json:"price"`
	Hex      string `json:"hex"`
	Symbol   string `json:"symbol"`
}

type taxEntry struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Cost     int    `json:"cost"`
}

// Load reads, validates and assembles a board description. A structurally
// invalid source fails here, before any game is created.
func Load(r io.Reader) (*Board, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read board source: %w", err)
	}

	// Schema validation first, so malformed files produce a format error
	// rather than a half-assembled board.
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("board source is not valid JSON: %w", err)
	}
	if err := boardSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("board source failed schema validation: %w", err)
	}

	var file boardFile
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode board source: %w", err)
	}

	return assemble(&file)
}

// LoadClassic returns the embedded classic London board.
func LoadClassic() (*Board, error) {
	return Load(bytes.NewReader(classicBoardSource))
}

// assemble places the configured tiles into their 40 slots, pins the four
// corner tiles and verifies completeness.
func assemble(file *boardFile) (*Board, error) {
	b := &Board{
		Name:               file.Name,
		Creator:            file.Creator,
		Language:           file.Language,
		Sets:               make(map[string][]int),
		StationRent:        file.StationRent,
		UtilityMultipliers: file.UtilityMultipliers,
	}

	place := func(tile *Tile) error {
		if tile.Index < 0 || tile.Index >= BoardSize {
			return fmt.Errorf("tile %q has position %d outside the board", tile.Name, tile.Index)
		}
		if b.Tiles[tile.Index] != nil {
			return fmt.Errorf("tiles %q and %q both claim position %d", b.Tiles[tile.Index].Name, tile.Name, tile.Index)
		}
		b.Tiles[tile.Index] = tile
		return nil
	}

	for set, entries := range file.Residences {
		for _, entry := range entries {
			tile := &Tile{
				Index:     entry.Position,
				Kind:      TileResidence,
				Name:      entry.Name,
				Set:       set,
				Price:     entry.Price,
				Hex:       entry.Hex,
				Rent:      entry.Rent,
				HouseCost: entry.HouseCost,
				Owner:     NoOwner,
			}
			if err := place(tile); err != nil {
				return nil, err
			}
			b.Sets[set] = append(b.Sets[set], entry.Position)
		}
	}
	for _, entry := range file.Stations {
		tile := &Tile{
			Index: entry.Position,
			Kind:  TileStation,
			Name:  entry.Name,
			Set:   StationSet,
			Price: entry.Price,
			Hex:   entry.Hex,
			Owner: NoOwner,
		}
		if err := place(tile); err != nil {
			return nil, err
		}
		b.Sets[StationSet] = append(b.Sets[StationSet], entry.Position)
	}
	for _, entry := range file.Utilities {
		tile := &Tile{
			Index:  entry.Position,
			Kind:   TileUtility,
			Name:   entry.Name,
			Set:    UtilitySet,
			Price:  entry.Price,
			Hex:    entry.Hex,
			Symbol: entry.Symbol,
			Owner:  NoOwner,
		}
		if err := place(tile); err != nil {
			return nil, err
		}
		b.Sets[UtilitySet] = append(b.Sets[UtilitySet], entry.Position)
	}
	for _, idx := range file.Chance {
		if err := place(&Tile{Index: idx, Kind: TileChance, Name: "Chance", Owner: NoOwner}); err != nil {
			return nil, err
		}
	}
	for _, idx := range file.Chest {
		if err := place(&Tile{Index: idx, Kind: TileCommunityChest, Name: "Community Chest", Owner: NoOwner}); err != nil {
			return nil, err
		}
	}
	for _, entry := range file.Taxes {
		tile := &Tile{
			Index:     entry.Position,
			Kind:      TileTax,
			Name:      entry.Name,
			TaxAmount: entry.Cost,
			Owner:     NoOwner,
		}
		if err := place(tile); err != nil {
			return nil, err
		}
	}

	corners := []struct {
		index int
		kind  TileKind
		name  string
	}{
		{GoIndex, TileGo, "Go"},
		{JailIndex, TileJail, "Jail"},
		{FreeParkingIndex, TileFreeParking, "Free Parking"},
		{GoToJailIndex, TileGoToJail, "Go To Jail"},
	}
	for _, corner := range corners {
		if err := place(&Tile{Index: corner.index, Kind: corner.kind, Name: corner.name, Owner: NoOwner}); err != nil {
			return nil, fmt.Errorf("corner slot %d is occupied: %w", corner.index, err)
		}
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("board %q is incomplete: %w", b.Name, err)
	}
	return b, nil
}
