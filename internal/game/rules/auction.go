package rules

import "fmt"

// BidRecord is a single ledger entry in an auction. Amount is the raise over
// the running total at the time the bid was made; amount 0 is a withdrawal.
type BidRecord struct {
	Seat   int
	Amount int
}

// Auction tracks the bid ledger for a single property sale. Bidder rotation
// starts at the seat the auction was opened with and advances to the next
// non-withdrawn bidder after every recorded action. The price is the running
// total of all raises, not a per-bid value.
type Auction struct {
	TileIndex int

	order     []int
	bids      []BidRecord
	withdrawn map[int]bool
	cursor    int
}

// NewAuction opens an auction for the tile with the given eligible bidders,
// in rotation order. The first bidder in the slice acts first.
func NewAuction(tileIndex int, bidders []int) *Auction {
	order := append([]int(nil), bidders...)
	return &Auction{
		TileIndex: tileIndex,
		order:     order,
		withdrawn: make(map[int]bool),
	}
}

// CurrentBidder returns the seat expected to act next.
func (a *Auction) CurrentBidder() int {
	return a.order[a.cursor]
}

// MaximumBid returns the running total of all raises recorded so far.
func (a *Auction) MaximumBid() int {
	total := 0
	for _, bid := range a.bids {
		total += bid.Amount
	}
	return total
}

// Bids returns the ledger in the order recorded.
func (a *Auction) Bids() []BidRecord {
	return a.bids
}

// RaiseTo records a bid lifting the running total to the given amount. The
// new total must strictly exceed the current maximum and stay within the
// bidder's balance.
func (a *Auction) RaiseTo(seat, total, balance int) error {
	if a.Finished() {
		return fmt.Errorf("auction for tile %d has ended", a.TileIndex)
	}
	if seat != a.CurrentBidder() {
		return fmt.Errorf("seat %d bid out of turn (expected seat %d)", seat, a.CurrentBidder())
	}
	max := a.MaximumBid()
	if total <= max {
		return fmt.Errorf("bid of %d does not exceed the current maximum of %d", total, max)
	}
	if total > balance {
		return fmt.Errorf("bid of %d exceeds available balance of %d", total, balance)
	}
	a.bids = append(a.bids, BidRecord{Seat: seat, Amount: total - max})
	a.advance()
	return nil
}

// Withdraw removes the seat from the auction. A withdrawal is recorded in the
// ledger as a zero bid.
func (a *Auction) Withdraw(seat int) error {
	if a.Finished() {
		return fmt.Errorf("auction for tile %d has ended", a.TileIndex)
	}
	if seat != a.CurrentBidder() {
		return fmt.Errorf("seat %d withdrew out of turn (expected seat %d)", seat, a.CurrentBidder())
	}
	a.bids = append(a.bids, BidRecord{Seat: seat, Amount: 0})
	a.withdrawn[seat] = true
	a.advance()
	return nil
}

// Finished reports whether at most one eligible bidder remains.
func (a *Auction) Finished() bool {
	return len(a.order)-len(a.withdrawn) <= 1
}

// Winner returns the sole remaining bidder. ok is false when every bidder
// withdrew before any sale could happen.
func (a *Auction) Winner() (int, bool) {
	if !a.Finished() {
		return 0, false
	}
	for _, seat := range a.order {
		if !a.withdrawn[seat] {
			return seat, true
		}
	}
	return 0, false
}

// advance moves the cursor to the next non-withdrawn bidder.
func (a *Auction) advance() {
	if a.Finished() {
		return
	}
	for i := 0; i < len(a.order); i++ {
		a.cursor = (a.cursor + 1) % len(a.order)
		if !a.withdrawn[a.order[a.cursor]] {
			return
		}
	}
}
