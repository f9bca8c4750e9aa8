package poker

// HoleCardCategory represents the preflop strength bucket of two hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards provides a simple preflop hand categorization.
// Categories: Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited broadway),
// Weak (22-66, suited connectors), Trash (everything else).
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	if !card1.Valid() || !card2.Valid() || card1 == card2 {
		return CategoryUnknown
	}

	small, big := card1.Rank, card2.Rank
	if small > big {
		small, big = big, small
	}
	suited := card1.Suit == card2.Suit
	pair := small == big

	switch {
	case pair && small >= Jack, small == King && big == Ace:
		return CategoryPremium
	case pair && small == Ten, big == Ace && (small == Queen || small == Jack):
		return CategoryStrong
	case pair && small >= Seven, suited && small >= Ten:
		return CategoryMedium
	case pair, suited && big-small <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}
