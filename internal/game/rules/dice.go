package rules

import (
	"math/rand"
	"sync"
	"time"
)

// Roll holds the two dice of a single throw.
type Roll struct {
	First  int
	Second int
}

// Sum returns the combined value of both dice.
func (r Roll) Sum() int {
	return r.First + r.Second
}

// IsDouble reports whether both dice show the same value.
func (r Roll) IsDouble() bool {
	return r.First == r.Second
}

// Roller produces dice rolls. Implementations must return values in [1,6].
type Roller interface {
	Roll() Roll
}

// RandomRoller rolls two independent uniform dice.
type RandomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the current time.
func NewRandomRoller() *RandomRoller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller with a fixed seed for reproducible games.
func NewSeededRoller(seed int64) *RandomRoller {
	return &RandomRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a fresh two-dice throw.
func (r *RandomRoller) Roll() Roll {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Roll{
		First:  r.rng.Intn(6) + 1,
		Second: r.rng.Intn(6) + 1,
	}
}

// ScriptedRoller replays a fixed sequence of rolls. When the script is
// exhausted it repeats the final roll, so a test can end with a known throw.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []Roll
	next  int
}

// NewScriptedRoller creates a roller that returns the given rolls in order.
func NewScriptedRoller(rolls ...Roll) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Push appends rolls to the end of the script.
func (s *ScriptedRoller) Push(rolls ...Roll) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolls = append(s.rolls, rolls...)
}

// Roll consumes the next scripted throw. Only an exhausted script repeats
// its final roll, so rolls pushed later are picked up in order.
func (s *ScriptedRoller) Roll() Roll {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.rolls) == 0 {
		return Roll{First: 1, Second: 2}
	}
	if s.next >= len(s.rolls) {
		return s.rolls[len(s.rolls)-1]
	}
	roll := s.rolls[s.next]
	s.next++
	return roll
}
