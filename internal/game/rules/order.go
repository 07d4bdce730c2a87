package rules

import "math/rand"

// TurnOrder tracks seat rotation and eliminations. Seats are stable integer
// indices into the game's player arena; an eliminated seat stays in the
// rotation structure but is skipped permanently.
type TurnOrder struct {
	seats      []int
	current    int
	eliminated map[int]bool
}

// NewTurnOrder creates a rotation over seats 0..count-1, starting at seat 0.
func NewTurnOrder(count int) *TurnOrder {
	seats := make([]int, count)
	for i := range seats {
		seats[i] = i
	}
	return &TurnOrder{
		seats:      seats,
		eliminated: make(map[int]bool),
	}
}

// Shuffle randomizes the seating order before the first turn.
func (o *TurnOrder) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(o.seats), func(i, j int) {
		o.seats[i], o.seats[j] = o.seats[j], o.seats[i]
	})
}

// Current returns the seat whose turn it is.
func (o *TurnOrder) Current() int {
	return o.seats[o.current]
}

// Advance moves to the next non-eliminated seat and returns it.
func (o *TurnOrder) Advance() int {
	for i := 0; i < len(o.seats); i++ {
		o.current = (o.current + 1) % len(o.seats)
		if !o.eliminated[o.seats[o.current]] {
			return o.seats[o.current]
		}
	}
	return o.seats[o.current]
}

// Eliminate marks a seat as permanently out of the rotation.
func (o *TurnOrder) Eliminate(seat int) {
	o.eliminated[seat] = true
}

// IsEliminated reports whether a seat has been eliminated.
func (o *TurnOrder) IsEliminated(seat int) bool {
	return o.eliminated[seat]
}

// Remaining returns the number of seats still in the rotation.
func (o *TurnOrder) Remaining() int {
	count := 0
	for _, seat := range o.seats {
		if !o.eliminated[seat] {
			count++
		}
	}
	return count
}

// ActiveSeats returns the non-eliminated seats in rotation order, starting
// from the given seat.
func (o *TurnOrder) ActiveSeats(from int) []int {
	start := 0
	for i, seat := range o.seats {
		if seat == from {
			start = i
			break
		}
	}
	active := make([]int, 0, len(o.seats))
	for i := 0; i < len(o.seats); i++ {
		seat := o.seats[(start+i)%len(o.seats)]
		if !o.eliminated[seat] {
			active = append(active, seat)
		}
	}
	return active
}

// TurnOrderSnapshot is the serializable form of a TurnOrder.
type TurnOrderSnapshot struct {
	Seats      []int
	Current    int
	Eliminated []int
}

// Snapshot captures the rotation for persistence.
func (o *TurnOrder) Snapshot() TurnOrderSnapshot {
	s := TurnOrderSnapshot{
		Seats:   append([]int(nil), o.seats...),
		Current: o.current,
	}
	for seat, out := range o.eliminated {
		if out {
			s.Eliminated = append(s.Eliminated, seat)
		}
	}
	return s
}

// RestoreTurnOrder rebuilds a rotation from a snapshot.
func RestoreTurnOrder(s TurnOrderSnapshot) *TurnOrder {
	o := &TurnOrder{
		seats:      append([]int(nil), s.Seats...),
		current:    s.Current,
		eliminated: make(map[int]bool),
	}
	for _, seat := range s.Eliminated {
		o.eliminated[seat] = true
	}
	return o
}

// Winner returns the last seat standing once all others are eliminated.
func (o *TurnOrder) Winner() (int, bool) {
	if o.Remaining() != 1 {
		return 0, false
	}
	for _, seat := range o.seats {
		if !o.eliminated[seat] {
			return seat, true
		}
	}
	return 0, false
}
