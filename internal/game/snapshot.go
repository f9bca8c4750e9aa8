package game

import (
	"slices"

	"github.com/lox/holdem-engine/poker"
)

// SeatState is one seat as seen in a Snapshot.
type SeatState struct {
	Seat        int
	Name        string
	Stack       int
	Committed   int // this street
	Contributed int // this hand
	Folded      bool
	AllIn       bool
	HasActed    bool // this street
	SittingOut  bool
	Revealed    bool
	HoleCards   []poker.Card // nil when hidden from the viewer
}

// Snapshot is a read-only copy of a hand. Mutating it never affects the
// engine.
type Snapshot struct {
	HandID       string
	HandNumber   int
	Street       Street
	Board        []poker.Card
	Seats        []SeatState
	Pot          int // banked plus current street
	BankedPot    int
	CurrentBet   int
	MinRaise     int // smallest legal raise increment
	ActiveSeat   int // -1 when nobody is to act
	LegalActions []ValidAction
	Complete     bool
	Outcome      *Outcome
}

// Snapshot captures the full state, including every hole card.
func (h *Hand) Snapshot() Snapshot {
	s := Snapshot{
		HandID:       h.ID,
		HandNumber:   h.Number,
		Street:       h.Street,
		Board:        slices.Clone(h.Board),
		Pot:          h.Ledger.Total(),
		BankedPot:    h.Ledger.Banked(),
		CurrentBet:   h.Betting.CurrentBet,
		MinRaise:     h.Betting.minRaiseIncrement(),
		ActiveSeat:   h.ActiveSeat,
		LegalActions: h.LegalActions(),
		Complete:     h.IsComplete(),
		Outcome:      h.Outcome(),
	}
	for _, p := range h.Players {
		s.Seats = append(s.Seats, SeatState{
			Seat:        p.Seat,
			Name:        p.Name,
			Stack:       h.Ledger.Stack(p.Seat),
			Committed:   h.Ledger.Committed(p.Seat),
			Contributed: h.Ledger.Contributed(p.Seat),
			Folded:      p.Folded,
			AllIn:       p.InHand() && h.Ledger.Stack(p.Seat) == 0,
			HasActed:    h.Betting.HasActed[p.Seat],
			SittingOut:  p.SittingOut,
			Revealed:    p.Revealed,
			HoleCards:   slices.Clone(p.HoleCards),
		})
	}
	return s
}

// ForSeat returns a copy with the hole cards of other seats hidden unless
// they have been revealed. Pass -1 for a spectator view.
func (s Snapshot) ForSeat(seat int) Snapshot {
	out := s
	out.Board = slices.Clone(s.Board)
	out.LegalActions = slices.Clone(s.LegalActions)
	if s.ActiveSeat != seat {
		out.LegalActions = nil
	}
	out.Seats = make([]SeatState, len(s.Seats))
	for i, st := range s.Seats {
		if st.Seat != seat && !st.Revealed {
			st.HoleCards = nil
		} else {
			st.HoleCards = slices.Clone(st.HoleCards)
		}
		out.Seats[i] = st
	}
	if s.Outcome != nil {
		o := s.Outcome.clone()
		out.Outcome = &o
	}
	return out
}

// Seat returns the state of seat, or false if out of range.
func (s Snapshot) Seat(seat int) (SeatState, bool) {
	for _, st := range s.Seats {
		if st.Seat == seat {
			return st, true
		}
	}
	return SeatState{}, false
}

// ToCall is how much seat needs to add to match the current bet.
func (s Snapshot) ToCall(seat int) int {
	st, ok := s.Seat(seat)
	if !ok {
		return 0
	}
	return min(max(s.CurrentBet-st.Committed, 0), st.Stack)
}

// Legal returns the legal action of the given kind, if any.
func (s Snapshot) Legal(kind ActionKind) (ValidAction, bool) {
	for _, v := range s.LegalActions {
		if v.Kind == kind {
			return v, true
		}
	}
	return ValidAction{}, false
}
