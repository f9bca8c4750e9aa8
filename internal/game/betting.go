package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// communityCards is how many board cards are dealt when the street begins.
func (s Street) communityCards() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// Resolution is the kind of action that was actually applied, after calls
// and all-ins are resolved against the seat's stack.
type Resolution struct {
	Kind      ActionKind
	Added     int  // chips moved from stack to the street commitment
	Total     int  // seat's street commitment afterwards
	FullRaise bool // reopened action for the other seats
}

// BettingRound holds the state of one street's betting. Commitments live in
// the PotLedger; the round only tracks what has to be matched and who still
// owes an action.
type BettingRound struct {
	CurrentBet    int // the largest street commitment among non-folded seats
	LastRaiseSize int
	LastAggressor int // -1 when nobody has bet this street
	HasActed      [NumSeats]bool
	MinBet        int
}

// NewBettingRound creates the betting state for a fresh street
func NewBettingRound(minBet int) *BettingRound {
	if minBet < 1 {
		minBet = 1
	}
	return &BettingRound{LastAggressor: -1, MinBet: minBet}
}

// ResetForNewStreet clears the round for the next street
func (br *BettingRound) ResetForNewStreet() {
	br.CurrentBet = 0
	br.LastRaiseSize = 0
	br.LastAggressor = -1
	br.HasActed = [NumSeats]bool{}
}

// minRaiseIncrement is the smallest legal raise over CurrentBet.
func (br *BettingRound) minRaiseIncrement() int {
	return max(br.LastRaiseSize, 1)
}

// canRaise reports whether betting is open for seat. A seat that already
// acted can raise again only after a full bet or raise cleared its flag.
func (br *BettingRound) canRaise(seat int) bool {
	return !br.HasActed[seat]
}

// LegalActions lists what seat may do right now.
func (br *BettingRound) LegalActions(seat int, l *PotLedger) []ValidAction {
	stack := l.Stack(seat)
	committed := l.Committed(seat)
	toCall := br.CurrentBet - committed
	allInTo := committed + stack

	actions := []ValidAction{{Kind: Fold}}
	if stack == 0 {
		return actions
	}

	if toCall == 0 {
		actions = append(actions, ValidAction{Kind: Check, Min: committed, Max: committed})
	} else if toCall < stack {
		actions = append(actions, ValidAction{Kind: Call, Min: br.CurrentBet, Max: br.CurrentBet})
	}

	switch {
	case br.CurrentBet == 0:
		if stack > br.MinBet {
			actions = append(actions, ValidAction{Kind: Bet, Min: br.MinBet, Max: allInTo})
		}
	case br.canRaise(seat) && toCall < stack:
		minTo := br.CurrentBet + br.minRaiseIncrement()
		if allInTo > minTo {
			actions = append(actions, ValidAction{Kind: Raise, Min: minTo, Max: allInTo})
		}
	}

	// All-in is legal unless it would be a raise the seat may not make.
	if toCall >= stack || br.CurrentBet == 0 || br.canRaise(seat) {
		actions = append(actions, ValidAction{Kind: AllIn, Min: allInTo, Max: allInTo})
	}
	return actions
}

// Apply validates a against the street state and moves the chips through
// the ledger. On error nothing has changed. Folding is handled by the caller.
func (br *BettingRound) Apply(seat int, a Action, l *PotLedger) (Resolution, error) {
	stack := l.Stack(seat)
	committed := l.Committed(seat)
	toCall := br.CurrentBet - committed

	var res Resolution
	switch a.Kind {
	case Fold:
		res = Resolution{Kind: Fold, Total: committed}

	case Check:
		if toCall != 0 {
			return res, rejectf(ErrIllegalAction, "cannot check, must call %d", toCall)
		}
		res = Resolution{Kind: Check, Total: committed}

	case Call:
		if toCall == 0 {
			return res, rejectf(ErrIllegalAction, "nothing to call, check instead")
		}
		add := min(toCall, stack)
		if err := l.Commit(seat, add); err != nil {
			return res, err
		}
		res = Resolution{Kind: Call, Added: add, Total: committed + add}
		if l.Stack(seat) == 0 {
			res.Kind = AllIn
		}

	case Bet:
		if br.CurrentBet != 0 {
			return res, rejectf(ErrIllegalAction, "cannot bet into %d, raise instead", br.CurrentBet)
		}
		return br.aggress(seat, a.Amount, stack, committed, Bet, l)

	case Raise:
		if br.CurrentBet == 0 {
			return res, rejectf(ErrIllegalAction, "nothing to raise, bet instead")
		}
		if !br.canRaise(seat) {
			return res, rejectf(ErrIllegalAction, "betting is not reopened for seat %d", seat)
		}
		return br.aggress(seat, a.Amount, stack, committed, Raise, l)

	case AllIn:
		if stack == 0 {
			return res, rejectf(ErrIllegalAction, "seat %d has no chips", seat)
		}
		to := committed + stack
		if to <= br.CurrentBet {
			if err := l.Commit(seat, stack); err != nil {
				return res, err
			}
			res = Resolution{Kind: AllIn, Added: stack, Total: to}
			break
		}
		kind := Bet
		if br.CurrentBet > 0 {
			if !br.canRaise(seat) {
				return res, rejectf(ErrIllegalAction, "betting is not reopened for seat %d", seat)
			}
			kind = Raise
		}
		return br.aggress(seat, to, stack, committed, kind, l)

	default:
		return res, rejectf(ErrIllegalAction, "unknown action kind %d", a.Kind)
	}

	br.HasActed[seat] = true
	return res, nil
}

// aggress applies a bet or raise to a street total of "to".
func (br *BettingRound) aggress(seat, to, stack, committed int, kind ActionKind, l *PotLedger) (Resolution, error) {
	add := to - committed
	if to <= br.CurrentBet {
		return Resolution{}, rejectf(ErrIllegalAction, "%s to %d does not exceed current bet %d", kind, to, br.CurrentBet)
	}
	if add > stack {
		return Resolution{}, rejectf(ErrInsufficientChips, "%s to %d needs %d, seat %d has %d", kind, to, add, seat, stack)
	}
	allIn := add == stack

	increment := to - br.CurrentBet
	minIncrement := br.minRaiseIncrement()
	if kind == Bet {
		minIncrement = br.MinBet
	}
	full := increment >= minIncrement
	if !full && !allIn {
		return Resolution{}, rejectf(ErrIllegalAction, "%s to %d below minimum %d", kind, to, br.CurrentBet+minIncrement)
	}

	if err := l.Commit(seat, add); err != nil {
		return Resolution{}, err
	}

	if full {
		br.LastRaiseSize = increment
		for s := range br.HasActed {
			br.HasActed[s] = false
		}
	}
	br.CurrentBet = to
	br.LastAggressor = seat
	br.HasActed[seat] = true

	res := Resolution{Kind: kind, Added: add, Total: to, FullRaise: full}
	if allIn {
		res.Kind = AllIn
	}
	return res, nil
}

// canAct reports whether the seat can still put chips in this hand.
func canAct(p *Player, l *PotLedger) bool {
	return p.InHand() && l.Stack(p.Seat) > 0
}

// countActive returns the number of seats that are neither folded nor all-in.
func countActive(players []*Player, l *PotLedger) int {
	n := 0
	for _, p := range players {
		if canAct(p, l) {
			n++
		}
	}
	return n
}

// owesAction reports whether seat must act before the street can end.
func (br *BettingRound) owesAction(p *Player, l *PotLedger) bool {
	if !canAct(p, l) {
		return false
	}
	return !br.HasActed[p.Seat] || l.Committed(p.Seat) < br.CurrentBet
}

// IsComplete checks if betting is complete for this street: every seat that
// can still act has matched CurrentBet and acted since the last full bet or
// raise. With at most one such seat left, matching the bet is enough.
func (br *BettingRound) IsComplete(players []*Player, l *PotLedger) bool {
	if countActive(players, l) <= 1 {
		for _, p := range players {
			if canAct(p, l) && l.Committed(p.Seat) < br.CurrentBet {
				return false
			}
		}
		return true
	}
	for _, p := range players {
		if br.owesAction(p, l) {
			return false
		}
	}
	return true
}

// NextToAct returns the first seat after "after" (wrapping, ascending) that
// owes an action, or -1. Pass -1 to start from seat 0.
func (br *BettingRound) NextToAct(after int, players []*Player, l *PotLedger) int {
	for i := 1; i <= NumSeats; i++ {
		seat := (after + i + NumSeats) % NumSeats
		if br.owesAction(players[seat], l) {
			return seat
		}
	}
	return -1
}
