package game

import "fmt"

// ActionKind identifies a betting action.
type ActionKind uint8

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// ParseActionKind parses the lower-case names produced by String.
func ParseActionKind(s string) (ActionKind, error) {
	for k := Fold; k <= AllIn; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, rejectf(ErrIllegalAction, "unknown action %q", s)
}

// Action is a seat's request. For Bet and Raise, Amount is the seat's total
// commitment for the street after the action ("bet to", "raise to"). Other
// kinds carry no amount.
type Action struct {
	Kind   ActionKind
	Amount int
}

func FoldAction() Action        { return Action{Kind: Fold} }
func CheckAction() Action       { return Action{Kind: Check} }
func CallAction() Action        { return Action{Kind: Call} }
func AllInAction() Action       { return Action{Kind: AllIn} }
func BetAction(to int) Action   { return Action{Kind: Bet, Amount: to} }
func RaiseAction(to int) Action { return Action{Kind: Raise, Amount: to} }

func (a Action) String() string {
	switch a.Kind {
	case Bet, Raise:
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	default:
		return a.Kind.String()
	}
}

// Validate checks the action's shape, independent of table state.
func (a Action) Validate() error {
	switch a.Kind {
	case Fold, Check, Call, AllIn:
		if a.Amount != 0 {
			return rejectf(ErrIllegalAction, "%s takes no amount", a.Kind)
		}
	case Bet, Raise:
		if a.Amount <= 0 {
			return rejectf(ErrIllegalAction, "%s amount must be positive, got %d", a.Kind, a.Amount)
		}
	default:
		return rejectf(ErrIllegalAction, "unknown action kind %d", a.Kind)
	}
	return nil
}

// ValidAction describes one legal action for the active seat. For Bet and
// Raise, Min and Max bound the "to" amount; for Call and AllIn they are the
// total the seat would have committed this street afterwards.
type ValidAction struct {
	Kind ActionKind
	Min  int
	Max  int
}

// Allows reports whether a satisfies this legal action's kind and bounds.
func (v ValidAction) Allows(a Action) bool {
	if a.Kind != v.Kind {
		return false
	}
	if a.Kind == Bet || a.Kind == Raise {
		return a.Amount >= v.Min && a.Amount <= v.Max
	}
	return true
}
