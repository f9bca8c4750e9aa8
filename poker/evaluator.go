package poker

import (
	"fmt"
	"sort"
	"strings"
)

// Category enumerates the classes of poker hands ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandScore is a totally ordered hand strength: category first, then the
// tiebreak ranks compared element by element.
type HandScore struct {
	Category Category
	Tiebreak []Rank
}

// String renders the score, e.g. "Full House (2,3)".
func (s HandScore) String() string {
	parts := make([]string, len(s.Tiebreak))
	for i, r := range s.Tiebreak {
		parts[i] = fmt.Sprint(int(r))
	}
	return fmt.Sprintf("%s (%s)", s.Category, strings.Join(parts, ","))
}

// Comparison is the result of comparing two hand scores.
type Comparison int

const (
	LessThan    Comparison = -1
	Equal       Comparison = 0
	GreaterThan Comparison = 1
)

func (c Comparison) String() string {
	switch c {
	case LessThan:
		return "less"
	case GreaterThan:
		return "greater"
	default:
		return "equal"
	}
}

// CompareHandScore orders two scores. Missing trailing tiebreak entries
// compare as zero.
func CompareHandScore(a, b HandScore) Comparison {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return GreaterThan
		}
		return LessThan
	}
	n := max(len(a.Tiebreak), len(b.Tiebreak))
	for i := range n {
		var ra, rb Rank
		if i < len(a.Tiebreak) {
			ra = a.Tiebreak[i]
		}
		if i < len(b.Tiebreak) {
			rb = b.Tiebreak[i]
		}
		if ra > rb {
			return GreaterThan
		}
		if ra < rb {
			return LessThan
		}
	}
	return Equal
}

// EvaluateBest returns the score of the strongest 5-card subset of 5 to 7
// cards. The result does not depend on input order.
func EvaluateBest(cards []Card) (HandScore, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandScore{}, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrInvalidCards, len(cards))
	}
	if err := ValidateCards(cards); err != nil {
		return HandScore{}, err
	}

	var best HandScore
	found := false
	var five [5]Card
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five = [5]Card{cards[a], cards[b], cards[c], cards[d], cards[e]}
						score := scoreFive(five)
						if !found || CompareHandScore(score, best) == GreaterThan {
							best = score
							found = true
						}
					}
				}
			}
		}
	}
	return best, nil
}

// rankGroup is a rank and how many times it appears in a five-card hand.
type rankGroup struct {
	rank  Rank
	count int
}

// scoreFive scores exactly five valid, distinct cards.
func scoreFive(cards [5]Card) HandScore {
	var counts [15]int
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	groups := make([]rankGroup, 0, 5)
	for r := Ace; r >= Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	// Larger groups first, higher rank breaks ties; groups is already rank-descending.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})

	straightHigh := Rank(0)
	if len(groups) == 5 {
		hi, lo := groups[0].rank, groups[4].rank
		switch {
		case hi-lo == 4:
			straightHigh = hi
		case hi == Ace && groups[1].rank == Five:
			straightHigh = Five // A-2-3-4-5 wheel
		}
	}

	switch {
	case straightHigh > 0 && flush:
		if straightHigh == Ace {
			return HandScore{Category: RoyalFlush, Tiebreak: []Rank{Ace}}
		}
		return HandScore{Category: StraightFlush, Tiebreak: []Rank{straightHigh}}
	case groups[0].count == 4:
		return HandScore{Category: FourOfAKind, Tiebreak: groupRanks(groups)}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandScore{Category: FullHouse, Tiebreak: groupRanks(groups)}
	case flush:
		return HandScore{Category: Flush, Tiebreak: groupRanks(groups)}
	case straightHigh > 0:
		return HandScore{Category: Straight, Tiebreak: []Rank{straightHigh}}
	case groups[0].count == 3:
		return HandScore{Category: ThreeOfAKind, Tiebreak: groupRanks(groups)}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandScore{Category: TwoPair, Tiebreak: groupRanks(groups)}
	case groups[0].count == 2:
		return HandScore{Category: OnePair, Tiebreak: groupRanks(groups)}
	default:
		return HandScore{Category: HighCard, Tiebreak: groupRanks(groups)}
	}
}

func groupRanks(groups []rankGroup) []Rank {
	out := make([]Rank, len(groups))
	for i, g := range groups {
		out[i] = g.rank
	}
	return out
}
