package game

import "github.com/lox/holdem-engine/poker"

// NumSeats is the fixed table size. Seats act in ascending index order.
const NumSeats = 4

// Player is a seat's per-hand state. The stack lives in the PotLedger, which
// owns every chip during a hand.
type Player struct {
	Seat       int
	Name       string
	HoleCards  []poker.Card
	Folded     bool
	SittingOut bool // zero stack at hand start: no cards, never eligible
	Revealed   bool // hole cards shown (run-out or showdown)
}

// InHand reports whether the seat is still contesting the pot.
func (p *Player) InHand() bool {
	return !p.Folded && !p.SittingOut
}

func validSeat(seat int) bool {
	return seat >= 0 && seat < NumSeats
}
