package game

import (
	"fmt"

	"github.com/openmonopoly/monopoly-server-go/internal/game/board"
)

// requireManageable guards the asset-management actions: they belong to the
// current player and are suspended during auctions. They stay legal while a
// rent debt is pending so the player can raise funds.
func (gs *gameState) requireManageable(seat int) error {
	if err := gs.requireCurrent(seat); err != nil {
		return err
	}
	return gs.requireNoAuction()
}

// setHouseRange returns the lowest and highest house counts across the
// seat's residences in a set, for the even-construction rule.
func (gs *gameState) setHouseRange(set string) (min, max int) {
	min, max = board.HotelHouseCount, 0
	for _, idx := range gs.board.Sets[set] {
		houses := gs.board.Tile(idx).Houses
		if houses < min {
			min = houses
		}
		if houses > max {
			max = houses
		}
	}
	return min, max
}

// handleBuildHouse adds one house (or the hotel, as the fifth building) to
// a residence.
func (gs *gameState) handleBuildHouse(seat, tileIndex int) error {
	if err := gs.requireManageable(seat); err != nil {
		return err
	}
	tile := gs.board.Tile(tileIndex)
	if tile.Kind != board.TileResidence {
		return fmt.Errorf("%s is not a residence", tile.Name)
	}
	if tile.Owner != seat {
		return fmt.Errorf("%s does not belong to seat %d", tile.Name, seat)
	}
	if tile.Mortgaged {
		return fmt.Errorf("%s is mortgaged", tile.Name)
	}
	if !gs.board.SetComplete(tile.Set, seat) {
		return fmt.Errorf("the %s set is not completely owned", tile.Set)
	}
	if tile.Houses >= board.HotelHouseCount {
		return fmt.Errorf("%s already has a hotel", tile.Name)
	}

	if !gs.settings.UnevenConstruction {
		min, _ := gs.setHouseRange(tile.Set)
		if tile.Houses > min {
			return fmt.Errorf("houses must be built evenly across the %s set", tile.Set)
		}
	}

	if gs.settings.LimitedSupply {
		if tile.Houses == board.HotelHouseCount-1 {
			if gs.board.HotelsAvailable() == 0 {
				return fmt.Errorf("the bank has no hotels left")
			}
		} else if gs.board.HousesAvailable() == 0 {
			return fmt.Errorf("the bank has no houses left")
		}
	}

	p := gs.player(seat)
	if p.Balance < tile.HouseCost {
		return fmt.Errorf("balance %d cannot cover the %d construction cost", p.Balance, tile.HouseCost)
	}

	tile.Houses++
	p.Balance -= tile.HouseCost
	if tile.Houses == board.HotelHouseCount {
		gs.addMessage("%s builds a hotel on %s", p.Name, tile.Name)
	} else {
		gs.addMessage("%s builds a house on %s (%d total)", p.Name, tile.Name, tile.Houses)
	}
	return nil
}

// handleSellHouse demolishes one building, refunding half its cost.
func (gs *gameState) handleSellHouse(seat, tileIndex int) error {
	if err := gs.requireManageable(seat); err != nil {
		return err
	}
	tile := gs.board.Tile(tileIndex)
	if tile.Kind != board.TileResidence {
		return fmt.Errorf("%s is not a residence", tile.Name)
	}
	if tile.Owner != seat {
		return fmt.Errorf("%s does not belong to seat %d", tile.Name, seat)
	}
	if tile.Houses == 0 {
		return fmt.Errorf("%s has no houses to sell", tile.Name)
	}

	if !gs.settings.UnevenConstruction {
		_, max := gs.setHouseRange(tile.Set)
		if tile.Houses < max {
			return fmt.Errorf("houses must be sold evenly across the %s set", tile.Set)
		}
	}

	p := gs.player(seat)
	tile.Houses--
	p.Balance += tile.HouseCost / 2
	gs.addMessage("%s demolishes a building on %s for %d", p.Name, tile.Name, tile.HouseCost/2)
	return nil
}

// handleToggleMortgage mortgages an unmortgaged property for its full
// price, or redeems a mortgaged one at 10% interest.
func (gs *gameState) handleToggleMortgage(seat, tileIndex int) error {
	if err := gs.requireManageable(seat); err != nil {
		return err
	}
	tile := gs.board.Tile(tileIndex)
	if !tile.Ownable() {
		return fmt.Errorf("%s cannot be mortgaged", tile.Name)
	}
	if tile.Owner != seat {
		return fmt.Errorf("%s does not belong to seat %d", tile.Name, seat)
	}

	p := gs.player(seat)
	if tile.Mortgaged {
		cost := tile.Price * 11 / 10
		if p.Balance < cost {
			return fmt.Errorf("balance %d cannot cover the %d redemption cost", p.Balance, cost)
		}
		tile.Mortgaged = false
		p.Balance -= cost
		gs.addMessage("%s redeems the mortgage on %s for %d", p.Name, tile.Name, cost)
		return nil
	}

	if tile.Houses > 0 {
		return fmt.Errorf("%s still has houses; sell them before mortgaging", tile.Name)
	}
	tile.Mortgaged = true
	p.Balance += tile.Price
	gs.addMessage("%s mortgages %s for %d", p.Name, tile.Name, tile.Price)
	return nil
}
