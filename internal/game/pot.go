package game

import (
	"slices"
	"sort"
)

// SidePot is a slice of the pot capped at one contribution level. Only the
// listed seats can win it.
type SidePot struct {
	Amount   int
	Eligible []int // seats, ascending
	Level    int   // per-seat contribution cap for this pot
}

// AwardStatus reports what Award did.
type AwardStatus uint8

const (
	AwardApplied AwardStatus = iota
	AwardAlreadyApplied
)

func (s AwardStatus) String() string {
	if s == AwardAlreadyApplied {
		return "already-applied"
	}
	return "applied"
}

// PotLedger owns every chip at the table for the duration of a hand: each
// seat's stack, what it has committed on the current street, and the pot
// banked from earlier streets. Chips only move through Commit, BankStreet
// and Award, so stacks+committed+banked is constant until Award, which
// redistributes without changing the sum.
type PotLedger struct {
	stacks      [NumSeats]int
	committed   [NumSeats]int
	contributed [NumSeats]int // whole-hand contributions, used for side pots
	banked      int
	lastApplied uint64
}

// NewPotLedger creates a ledger holding the given stacks. lastApplied is the
// highest award transaction id already used, so ids stay monotonic across hands.
func NewPotLedger(stacks []int, lastApplied uint64) (*PotLedger, error) {
	if len(stacks) != NumSeats {
		return nil, rejectf(ErrInvalidSetup, "need %d stacks, got %d", NumSeats, len(stacks))
	}
	l := &PotLedger{lastApplied: lastApplied}
	for seat, s := range stacks {
		if s < 0 {
			return nil, rejectf(ErrInvalidSetup, "seat %d has negative stack %d", seat, s)
		}
		l.stacks[seat] = s
	}
	return l, nil
}

// Stack returns the chips seat holds behind its bets.
func (l *PotLedger) Stack(seat int) int { return l.stacks[seat] }

// Committed returns what seat has put in on the current street.
func (l *PotLedger) Committed(seat int) int { return l.committed[seat] }

// Contributed returns what seat has put in over the whole hand.
func (l *PotLedger) Contributed(seat int) int { return l.contributed[seat] }

// Banked returns chips moved into the pot from completed streets.
func (l *PotLedger) Banked() int { return l.banked }

// LastApplied returns the id of the most recent applied award.
func (l *PotLedger) LastApplied() uint64 { return l.lastApplied }

// Stacks returns a copy of every seat's stack.
func (l *PotLedger) Stacks() []int {
	return slices.Clone(l.stacks[:])
}

// CommittedAll returns a copy of the current street's commitments.
func (l *PotLedger) CommittedAll() []int {
	return slices.Clone(l.committed[:])
}

// Total is the whole pot: banked chips plus the current street's bets.
func (l *PotLedger) Total() int {
	total := l.banked
	for _, c := range l.committed {
		total += c
	}
	return total
}

// Chips is every chip the ledger holds; it must not change during a hand.
func (l *PotLedger) Chips() int {
	total := l.Total()
	for _, s := range l.stacks {
		total += s
	}
	return total
}

// Commit moves amount from the seat's stack to its street commitment.
// Callers clamp to the stack first; the ledger never does.
func (l *PotLedger) Commit(seat, amount int) error {
	if !validSeat(seat) {
		return rejectf(ErrContractViolation, "seat %d out of range", seat)
	}
	if amount < 0 {
		return rejectf(ErrContractViolation, "negative commit %d", amount)
	}
	if amount > l.stacks[seat] {
		return rejectf(ErrInsufficientChips, "seat %d has %d, needs %d", seat, l.stacks[seat], amount)
	}
	l.stacks[seat] -= amount
	l.committed[seat] += amount
	l.contributed[seat] += amount
	return nil
}

// BankStreet moves every street commitment into the banked pot.
func (l *PotLedger) BankStreet() {
	for seat, c := range l.committed {
		l.banked += c
		l.committed[seat] = 0
	}
}

// ComputeSidePots partitions the whole pot by contribution level. Levels are
// the distinct non-zero contributions, ascending; each pot holds
// (level - previous level) from every seat that reached the level, and only
// non-folded seats that reached it are eligible. A level nobody eligible
// reached (a folded seat's overbet) is merged into the pot before it, and
// adjacent pots with the same eligible seats are merged.
func (l *PotLedger) ComputeSidePots(players []*Player) []SidePot {
	inHand := func(seat int) bool {
		return seat < len(players) && players[seat] != nil && players[seat].InHand()
	}

	var levels []int
	for _, c := range l.contributed {
		if c > 0 && !slices.Contains(levels, c) {
			levels = append(levels, c)
		}
	}
	sort.Ints(levels)

	var pots []SidePot
	prev := 0
	for _, level := range levels {
		pot := SidePot{Level: level}
		for seat, c := range l.contributed {
			if c >= level {
				pot.Amount += level - prev
				if inHand(seat) {
					pot.Eligible = append(pot.Eligible, seat)
				}
			}
		}
		prev = level

		if len(pots) > 0 {
			last := &pots[len(pots)-1]
			if len(pot.Eligible) == 0 || slices.Equal(last.Eligible, pot.Eligible) {
				last.Amount += pot.Amount
				last.Level = level
				continue
			}
		}
		pots = append(pots, pot)
	}

	// Chips from a level nobody eligible reached, before any eligible pot
	// exists, go to the next pot.
	if len(pots) > 1 && len(pots[0].Eligible) == 0 {
		pots[1].Amount += pots[0].Amount
		pots = pots[1:]
	}
	return pots
}

// Award pays distribution (seat -> chips) out of the pot. It applies at most
// once per transaction id: an id at or below the last applied one is a no-op
// that returns AwardAlreadyApplied. The distribution must account for the
// entire pot.
func (l *PotLedger) Award(txID uint64, distribution map[int]int) (AwardStatus, error) {
	if txID <= l.lastApplied {
		return AwardAlreadyApplied, nil
	}

	sum := 0
	for seat, amount := range distribution {
		if !validSeat(seat) {
			return AwardApplied, rejectf(ErrInvalidAward, "seat %d out of range", seat)
		}
		if amount < 0 {
			return AwardApplied, rejectf(ErrInvalidAward, "negative amount %d for seat %d", amount, seat)
		}
		sum += amount
	}
	if sum != l.Total() {
		return AwardApplied, rejectf(ErrInvalidAward, "distribution pays %d, pot holds %d", sum, l.Total())
	}

	for seat, amount := range distribution {
		l.stacks[seat] += amount
	}
	l.committed = [NumSeats]int{}
	l.banked = 0
	l.lastApplied = txID
	return AwardApplied, nil
}

// SplitPot divides amount evenly among winners. The odd-chip remainder goes
// to the first winner in seat order.
func SplitPot(amount int, winners []int) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return shares
	}
	seats := slices.Clone(winners)
	sort.Ints(seats)

	each := amount / len(seats)
	for _, seat := range seats {
		shares[seat] += each
	}
	shares[seats[0]] += amount % len(seats)
	return shares
}
