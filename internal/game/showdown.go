package game

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/lox/holdem-engine/poker"
)

// EndReason says how a hand finished.
type EndReason uint8

const (
	ReasonUncontested EndReason = iota
	ReasonShowdown
	ReasonAborted
)

func (r EndReason) String() string {
	switch r {
	case ReasonUncontested:
		return "uncontested"
	case ReasonShowdown:
		return "showdown"
	case ReasonAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// HandResult is one seat's best five-card hand at showdown.
type HandResult struct {
	Seat      int
	HoleCards []poker.Card
	Score     poker.HandScore
}

// PotResult records how one pot (main or side) was split.
type PotResult struct {
	Amount   int
	Eligible []int
	Winners  []int
	Shares   map[int]int
}

// Outcome is the final result of a hand.
type Outcome struct {
	Reason  EndReason
	Winners []int         // every seat that received chips, ascending
	Amounts [NumSeats]int // chips each seat received
	Pots    []PotResult   // empty for uncontested and aborted hands
	Results []HandResult  // evaluated hands, in seat order
	RanOut  bool          // board was dealt with no betting left
	AwardID uint64        // ledger transaction id of the payout
	Cause   string        // why an aborted hand stopped
}

func (o Outcome) clone() Outcome {
	c := o
	c.Winners = slices.Clone(o.Winners)
	c.Pots = make([]PotResult, len(o.Pots))
	for i, p := range o.Pots {
		c.Pots[i] = PotResult{
			Amount:   p.Amount,
			Eligible: slices.Clone(p.Eligible),
			Winners:  slices.Clone(p.Winners),
			Shares:   maps.Clone(p.Shares),
		}
	}
	c.Results = make([]HandResult, len(o.Results))
	for i, r := range o.Results {
		c.Results[i] = HandResult{
			Seat:      r.Seat,
			HoleCards: slices.Clone(r.HoleCards),
			Score:     poker.HandScore{Category: r.Score.Category, Tiebreak: slices.Clone(r.Score.Tiebreak)},
		}
	}
	return c
}

// Won returns what seat received.
func (o Outcome) Won(seat int) int {
	if !validSeat(seat) {
		return 0
	}
	return o.Amounts[seat]
}

// finishUncontested pays the whole pot to the last seat standing.
func (h *Hand) finishUncontested() error {
	if h.IsComplete() {
		return nil
	}
	h.ActiveSeat = -1
	h.Ledger.BankStreet()

	winner := -1
	for _, p := range h.Players {
		if p.InHand() {
			winner = p.Seat
			break
		}
	}
	total := h.Ledger.Total()
	h.logger.Debug("Uncontested win", "seat", winner, "pot", total)

	return h.settle(&Outcome{Reason: ReasonUncontested}, map[int]int{winner: total})
}

// showdown evaluates every live hand against the board and splits each
// side pot among its best eligible hands.
func (h *Hand) showdown(ranOut bool) error {
	if h.IsComplete() {
		return nil
	}
	h.Street = Showdown
	h.ActiveSeat = -1
	h.reveal()

	scores := make(map[int]poker.HandScore)
	out := &Outcome{Reason: ReasonShowdown, RanOut: ranOut}
	for _, p := range h.Players {
		if !p.InHand() {
			continue
		}
		cards := append(slices.Clone(p.HoleCards), h.Board...)
		score, err := poker.EvaluateBest(cards)
		if err != nil {
			// Only reachable if the deck handed out duplicates.
			h.abort(err)
			return fmt.Errorf("%w: evaluating seat %d: %w", ErrContractViolation, p.Seat, err)
		}
		scores[p.Seat] = score
		out.Results = append(out.Results, HandResult{
			Seat:      p.Seat,
			HoleCards: slices.Clone(p.HoleCards),
			Score:     score,
		})
	}

	distribution := make(map[int]int)
	for _, pot := range h.Ledger.ComputeSidePots(h.Players) {
		winners := bestSeats(pot.Eligible, scores)
		shares := SplitPot(pot.Amount, winners)
		for seat, amount := range shares {
			distribution[seat] += amount
		}
		out.Pots = append(out.Pots, PotResult{
			Amount:   pot.Amount,
			Eligible: slices.Clone(pot.Eligible),
			Winners:  winners,
			Shares:   shares,
		})
		h.logger.Debug("Pot resolved", "amount", pot.Amount, "eligible", pot.Eligible, "winners", winners)
	}

	return h.settle(out, distribution)
}

// bestSeats returns the eligible seats holding the highest score, ascending.
func bestSeats(eligible []int, scores map[int]poker.HandScore) []int {
	var best []int
	var top poker.HandScore
	for _, seat := range eligible {
		score, ok := scores[seat]
		if !ok {
			continue
		}
		if len(best) == 0 {
			best, top = []int{seat}, score
			continue
		}
		switch poker.CompareHandScore(score, top) {
		case poker.GreaterThan:
			best, top = []int{seat}, score
		case poker.Equal:
			best = append(best, seat)
		}
	}
	sort.Ints(best)
	return best
}

// abort ends the hand early, refunding every seat's contribution.
func (h *Hand) abort(cause error) {
	if h.IsComplete() {
		return
	}
	h.ActiveSeat = -1
	h.Ledger.BankStreet()

	refunds := make(map[int]int)
	for seat := range NumSeats {
		if c := h.Ledger.Contributed(seat); c > 0 {
			refunds[seat] = c
		}
	}
	h.logger.Warn("Hand aborted", "cause", cause, "refunds", refunds)

	out := &Outcome{Reason: ReasonAborted, Cause: cause.Error()}
	if err := h.settle(out, refunds); err != nil {
		h.logger.Error("Refund failed", "error", err)
	}
}

// settle applies the single payout of the hand and records the outcome.
// A hand that already has an outcome is never paid twice.
func (h *Hand) settle(out *Outcome, distribution map[int]int) error {
	if h.IsComplete() {
		return nil
	}

	txID := h.Ledger.LastApplied() + 1
	status, err := h.Ledger.Award(txID, distribution)
	if err != nil {
		return err
	}
	if status == AwardAlreadyApplied {
		h.logger.Warn("Award already applied", "tx", txID)
		return nil
	}

	out.AwardID = txID
	for seat, amount := range distribution {
		if amount > 0 {
			out.Amounts[seat] += amount
		}
	}
	out.Winners = out.Winners[:0]
	for seat, amount := range out.Amounts {
		if amount > 0 {
			out.Winners = append(out.Winners, seat)
		}
	}
	h.outcome = out

	h.emitPot()
	if out.Reason == ReasonAborted {
		h.emit(HandAborted{
			EventMeta: h.nextMeta(),
			Cause:     out.Cause,
			Refunds:   slices.Clone(out.Amounts[:]),
		})
		return nil
	}

	h.logger.Info("Hand complete",
		"reason", out.Reason,
		"winners", out.Winners,
		"amounts", out.Amounts,
		"board", poker.FormatCards(h.Board))
	h.emit(HandEnded{
		EventMeta: h.nextMeta(),
		Reason:    out.Reason,
		Winners:   slices.Clone(out.Winners),
		Amounts:   slices.Clone(out.Amounts[:]),
		Board:     slices.Clone(h.Board),
		AwardID:   txID,
	})
	return nil
}
