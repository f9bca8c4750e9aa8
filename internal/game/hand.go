package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/poker"
)

// Hand drives a single hand: deal, four betting streets, then showdown or an
// uncontested win. Every transition runs synchronously inside SubmitAction;
// between calls the hand simply waits for the active seat.
type Hand struct {
	ID         string
	Number     int
	Street     Street
	Board      []poker.Card
	Players    []*Player
	Ledger     *PotLedger
	Betting    *BettingRound
	ActiveSeat int // -1 when nobody is due to act

	deck       *poker.Deck
	startChips int
	outcome    *Outcome
	events     *EventLog
	bus        EventBus
	logger     *log.Logger
}

// NewHand seats the given stacks (one per seat, zero means sitting out),
// shuffles a deck from rng unless WithDeck supplies one, deals hole cards
// and opens preflop betting.
func NewHand(rng *rand.Rand, stacks []int, opts ...HandOption) (*Hand, error) {
	cfg := defaultHandConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ledger, err := NewPotLedger(stacks, cfg.lastAwardID)
	if err != nil {
		return nil, err
	}

	players := make([]*Player, NumSeats)
	funded := 0
	for seat := range players {
		name := fmt.Sprintf("Seat %d", seat)
		if seat < len(cfg.names) && cfg.names[seat] != "" {
			name = cfg.names[seat]
		}
		players[seat] = &Player{
			Seat:       seat,
			Name:       name,
			SittingOut: stacks[seat] == 0,
		}
		if stacks[seat] > 0 {
			funded++
		}
	}
	if funded < 2 {
		return nil, rejectf(ErrInvalidSetup, "need at least 2 seats with chips, got %d", funded)
	}

	deck := cfg.deck
	if deck == nil {
		deck = poker.NewDeck(rng)
		deck.Shuffle()
	}

	h := &Hand{
		ID:         cfg.id,
		Number:     cfg.number,
		Street:     Preflop,
		Players:    players,
		Ledger:     ledger,
		Betting:    NewBettingRound(cfg.minBet),
		ActiveSeat: -1,
		deck:       deck,
		startChips: ledger.Chips(),
		events:     NewEventLog(),
		bus:        cfg.bus,
		logger:     cfg.logger.With("hand", cfg.id),
	}

	h.emit(HandStarted{
		EventMeta:  h.nextMeta(),
		HandNumber: h.Number,
		Names:      h.names(),
		Stacks:     ledger.Stacks(),
	})

	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}

	h.logger.Debug("Hand started", "number", h.Number, "stacks", ledger.Stacks())
	if err := h.beginStreet(); err != nil {
		return h, err
	}
	return h, nil
}

func (h *Hand) names() []string {
	out := make([]string, len(h.Players))
	for i, p := range h.Players {
		out[i] = p.Name
	}
	return out
}

// dealHoleCards deals one card at a time to each seated player, two passes.
func (h *Hand) dealHoleCards() error {
	for range 2 {
		for _, p := range h.Players {
			if p.SittingOut {
				continue
			}
			cards, err := h.deck.Draw(1)
			if err != nil {
				return fmt.Errorf("%w: dealing hole cards: %w", ErrResourceExhausted, err)
			}
			p.HoleCards = append(p.HoleCards, cards[0])
		}
	}
	return nil
}

// IsComplete returns true once the hand has been resolved or aborted.
func (h *Hand) IsComplete() bool {
	return h.outcome != nil
}

// Outcome returns a copy of the result, or nil while the hand is live.
func (h *Hand) Outcome() *Outcome {
	if h.outcome == nil {
		return nil
	}
	o := h.outcome.clone()
	return &o
}

// Events returns the hand's ordered event log.
func (h *Hand) Events() []Event {
	return h.events.Events()
}

// LegalActions returns the active seat's legal actions.
func (h *Hand) LegalActions() []ValidAction {
	if h.IsComplete() || h.ActiveSeat < 0 {
		return nil
	}
	return h.Betting.LegalActions(h.ActiveSeat, h.Ledger)
}

// SubmitAction applies an action for seat. It is rejected without any state
// change if the hand is over, seat is not the active seat, or the action is
// illegal. A returned ErrResourceExhausted means the action was applied but
// the hand then had to be aborted.
func (h *Hand) SubmitAction(seat int, a Action) error {
	if h.IsComplete() {
		return rejectf(ErrHandComplete, "hand %s already ended", h.ID)
	}
	if seat != h.ActiveSeat {
		return rejectf(ErrNotYourTurn, "seat %d acted, seat %d is to act", seat, h.ActiveSeat)
	}
	if err := a.Validate(); err != nil {
		return err
	}

	res, err := h.Betting.Apply(seat, a, h.Ledger)
	if err != nil {
		h.logger.Debug("Action rejected", "seat", seat, "action", a, "error", err)
		return err
	}
	p := h.Players[seat]
	if res.Kind == Fold {
		p.Folded = true
	}

	h.logger.Debug("Seat acted",
		"seat", seat,
		"street", h.Street,
		"action", res.Kind,
		"added", res.Added,
		"total", res.Total)

	h.emit(SeatActed{
		EventMeta: h.nextMeta(),
		Street:    h.Street,
		Seat:      seat,
		Kind:      res.Kind,
		Amount:    res.Added,
		Total:     res.Total,
	})
	h.emitPot()

	if res.Kind == Fold && h.countNotFolded() == 1 {
		err = h.finishUncontested()
	} else {
		err = h.advance(seat)
	}
	if err != nil {
		return err
	}
	return h.checkConservation()
}

// advance hands the turn to the next seat or closes the street.
func (h *Hand) advance(from int) error {
	if !h.Betting.IsComplete(h.Players, h.Ledger) {
		if next := h.Betting.NextToAct(from, h.Players, h.Ledger); next >= 0 {
			h.ActiveSeat = next
			return nil
		}
	}
	return h.endStreet()
}

// beginStreet opens betting, or runs the board out when at most one seat
// can still bet.
func (h *Hand) beginStreet() error {
	h.Betting.ResetForNewStreet()
	if countActive(h.Players, h.Ledger) <= 1 {
		return h.runOut()
	}
	h.ActiveSeat = h.Betting.NextToAct(-1, h.Players, h.Ledger)
	return nil
}

// endStreet banks the street and moves on.
func (h *Hand) endStreet() error {
	h.ActiveSeat = -1
	h.Ledger.BankStreet()
	h.emitPot()

	if h.Street == River {
		return h.showdown(false)
	}
	if countActive(h.Players, h.Ledger) <= 1 {
		return h.runOut()
	}
	if err := h.dealStreet(h.Street + 1); err != nil {
		return err
	}
	return h.beginStreet()
}

// runOut reveals every live hand and deals the rest of the board with no
// further betting.
func (h *Hand) runOut() error {
	h.ActiveSeat = -1
	h.reveal()
	for h.Street < River {
		if err := h.dealStreet(h.Street + 1); err != nil {
			return err
		}
	}
	return h.showdown(true)
}

func (h *Hand) dealStreet(s Street) error {
	cards, err := h.deck.Draw(s.communityCards())
	if err != nil {
		h.abort(err)
		return fmt.Errorf("%w: dealing %s: %w", ErrResourceExhausted, s, err)
	}
	h.Street = s
	h.Board = append(h.Board, cards...)
	h.logger.Debug("Street advanced", "street", s, "cards", poker.FormatCards(cards))
	h.emit(StreetAdvanced{
		EventMeta: h.nextMeta(),
		Street:    s,
		NewCards:  cards,
		Board:     append([]poker.Card(nil), h.Board...),
	})
	return nil
}

// reveal marks every non-folded hand as shown, once.
func (h *Hand) reveal() {
	shown := make(map[int][]poker.Card)
	for _, p := range h.Players {
		if p.InHand() && !p.Revealed {
			p.Revealed = true
			shown[p.Seat] = append([]poker.Card(nil), p.HoleCards...)
		}
	}
	if len(shown) > 0 {
		h.emit(HandsRevealed{EventMeta: h.nextMeta(), Hands: shown})
	}
}

func (h *Hand) countNotFolded() int {
	n := 0
	for _, p := range h.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// TotalChips is every chip in play: stacks plus pot.
func (h *Hand) TotalChips() int {
	return h.Ledger.Chips()
}

func (h *Hand) checkConservation() error {
	if got := h.Ledger.Chips(); got != h.startChips {
		h.logger.Error("Chip total changed", "start", h.startChips, "now", got)
		return fmt.Errorf("%w: started with %d, now %d", ErrChipsNotConserved, h.startChips, got)
	}
	return nil
}

func (h *Hand) nextMeta() EventMeta {
	return EventMeta{HandID: h.ID, Seq: h.events.Len() + 1}
}

func (h *Hand) emit(e Event) {
	h.events.Append(e)
	if h.bus != nil {
		h.bus.Publish(e)
	}
}

func (h *Hand) emitPot() {
	h.emit(PotChanged{
		EventMeta: h.nextMeta(),
		BankedPot: h.Ledger.Banked(),
		Committed: h.Ledger.CommittedAll(),
	})
}
