package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/holdem-engine/poker"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowHoleCards bool // Include hole cards in HandsRevealed lines
	PrettyCards   bool // Render suits as symbols
}

// EventFormatter renders events as hand-history lines. It remembers seat
// names and the running pot from earlier events of the same hand, so feed
// it events in order.
type EventFormatter struct {
	opts  FormattingOptions
	names []string
	pot   int
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the line for event, or "" for events that only update
// the formatter's state.
func (ef *EventFormatter) Format(event Event) string {
	switch e := event.(type) {
	case HandStarted:
		return ef.FormatHandStarted(e)
	case SeatActed:
		return ef.FormatSeatActed(e)
	case PotChanged:
		ef.pot = e.Total()
		return ""
	case StreetAdvanced:
		return ef.FormatStreetAdvanced(e)
	case HandsRevealed:
		return ef.FormatHandsRevealed(e)
	case HandEnded:
		return ef.FormatHandEnded(e)
	case HandAborted:
		return fmt.Sprintf("*** ABORTED *** %s (contributions refunded)", e.Cause)
	default:
		return ""
	}
}

// FormatHandStarted formats the hand header and seat list.
func (ef *EventFormatter) FormatHandStarted(event HandStarted) string {
	ef.names = slices.Clone(event.Names)
	ef.pot = 0

	var b strings.Builder
	fmt.Fprintf(&b, "Hand #%d (%s)", event.HandNumber, event.HandID)
	for seat, stack := range event.Stacks {
		if stack == 0 {
			fmt.Fprintf(&b, "\nSeat %d: %s (sitting out)", seat, ef.name(seat))
			continue
		}
		fmt.Fprintf(&b, "\nSeat %d: %s ($%d in chips)", seat, ef.name(seat), stack)
	}
	return b.String()
}

// FormatSeatActed formats a player action event into a human-readable string
func (ef *EventFormatter) FormatSeatActed(event SeatActed) string {
	name := ef.name(event.Seat)
	potAfter := ef.pot + event.Amount

	switch event.Kind {
	case Fold:
		return fmt.Sprintf("%s: folds", name)
	case Check:
		return fmt.Sprintf("%s: checks", name)
	case Call:
		return fmt.Sprintf("%s: calls $%d (pot now: $%d)", name, event.Amount, potAfter)
	case Bet:
		return fmt.Sprintf("%s: bets $%d (pot now: $%d)", name, event.Total, potAfter)
	case Raise:
		return fmt.Sprintf("%s: raises to $%d (pot now: $%d)", name, event.Total, potAfter)
	case AllIn:
		return fmt.Sprintf("%s: goes all-in for $%d (pot now: $%d)", name, event.Amount, potAfter)
	default:
		return fmt.Sprintf("%s: %s $%d", name, event.Kind, event.Amount)
	}
}

// FormatStreetAdvanced formats a street change event into a human-readable string
func (ef *EventFormatter) FormatStreetAdvanced(event StreetAdvanced) string {
	label := strings.ToUpper(event.Street.String())
	prev := len(event.Board) - len(event.NewCards)
	if prev <= 0 {
		return fmt.Sprintf("*** %s *** [%s]", label, ef.formatCards(event.Board))
	}
	return fmt.Sprintf("*** %s *** [%s] [%s]", label, ef.formatCards(event.Board[:prev]), ef.formatCards(event.NewCards))
}

// FormatHandsRevealed lists the shown hands in seat order.
func (ef *EventFormatter) FormatHandsRevealed(event HandsRevealed) string {
	seats := make([]int, 0, len(event.Hands))
	for seat := range event.Hands {
		seats = append(seats, seat)
	}
	slices.Sort(seats)

	lines := []string{"*** SHOW ***"}
	for _, seat := range seats {
		if ef.opts.ShowHoleCards {
			lines = append(lines, fmt.Sprintf("%s: shows [%s]", ef.name(seat), ef.formatCards(event.Hands[seat])))
		} else {
			lines = append(lines, fmt.Sprintf("%s: shows", ef.name(seat)))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatHandEnded formats a hand end event into a human-readable string
func (ef *EventFormatter) FormatHandEnded(event HandEnded) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** SUMMARY *** (%s)", event.Reason)
	if len(event.Board) > 0 {
		fmt.Fprintf(&b, "\nBoard: [%s]", ef.formatCards(event.Board))
	}
	for _, seat := range event.Winners {
		fmt.Fprintf(&b, "\n%s collected $%d", ef.name(seat), event.Amounts[seat])
	}
	return b.String()
}

func (ef *EventFormatter) name(seat int) string {
	if seat >= 0 && seat < len(ef.names) && ef.names[seat] != "" {
		return ef.names[seat]
	}
	return fmt.Sprintf("Seat %d", seat)
}

func (ef *EventFormatter) formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if ef.opts.PrettyCards {
			parts[i] = c.Pretty()
		} else {
			parts[i] = c.String()
		}
	}
	return strings.Join(parts, " ")
}
