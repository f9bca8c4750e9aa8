// Package statistics accumulates per-seat results across simulated hands.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdem-engine/internal/game"
)

// HandResult is the outcome of one hand from one seat's point of view.
type HandResult struct {
	Net            int  // chips won minus chips put in
	Seat           int  // 0-3
	WentToShowdown bool // hand was decided by comparing hands
	FinalPotSize   int  // chips awarded in the hand
	StreetReached  game.Street
}

// SeatStats tracks one seat's results.
type SeatStats struct {
	Hands   int
	SumNet  float64
	SumNet2 float64
}

// Mean returns the seat's average net chips per hand.
func (s SeatStats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Statistics tracks results for a series of hands.
type Statistics struct {
	Hands   int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Every result, for median and percentiles

	// Every result lands in exactly one of these buckets
	ShowdownWins    int
	NonShowdownWins int
	ShowdownNet     float64
	NonShowdownNet  float64
	AllNet          float64

	Seats   [game.NumSeats]SeatStats
	Streets [game.Showdown + 1]int // hands by furthest street reached

	// BigPotThreshold is the pot size counted as a big pot. Zero disables.
	BigPotThreshold int
	MaxPot          int
	BigPots         int
	BigPotsNet      float64
}

// Mean returns the arithmetic mean of all results in chips per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumNet / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.Net)
	s.Hands++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	if result.Net > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}

	if result.WentToShowdown {
		s.ShowdownNet += net
	} else {
		s.NonShowdownNet += net
	}
	s.AllNet += net

	if seat := result.Seat; seat >= 0 && seat < game.NumSeats {
		s.Seats[seat].Hands++
		s.Seats[seat].SumNet += net
		s.Seats[seat].SumNet2 += net * net
	}

	if street := result.StreetReached; street >= game.Preflop && street <= game.Showdown {
		s.Streets[street]++
	}

	s.MaxPot = max(s.MaxPot, result.FinalPotSize)
	if s.BigPotThreshold > 0 && result.FinalPotSize >= s.BigPotThreshold {
		s.BigPots++
		s.BigPotsNet += net
	}
}

// Merge folds other's results into s. Both must use the same threshold.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownNet += other.ShowdownNet
	s.NonShowdownNet += other.NonShowdownNet
	s.AllNet += other.AllNet
	for i := range s.Seats {
		s.Seats[i].Hands += other.Seats[i].Hands
		s.Seats[i].SumNet += other.Seats[i].SumNet
		s.Seats[i].SumNet2 += other.Seats[i].SumNet2
	}
	for i := range s.Streets {
		s.Streets[i] += other.Streets[i]
	}
	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.BigPots += other.BigPots
	s.BigPotsNet += other.BigPotsNet
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbouring results.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// SeatMean returns the mean result for a seat (0-3)
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= game.NumSeats {
		return 0
	}
	return s.Seats[seat].Mean()
}

// IsLedgerBalanced checks the showdown and non-showdown buckets add up
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.NonShowdownNet) <= 1e-6
}

// Validate performs consistency checks on the accumulated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.2f, showdown=%.2f, non-showdown=%.2f",
			s.AllNet, s.ShowdownNet, s.NonShowdownNet)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	totalWins := s.ShowdownWins + s.NonShowdownWins
	if totalWins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", totalWins, s.Hands)
	}

	seatHands := 0
	for _, st := range s.Seats {
		seatHands += st.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match total hands (%d)", seatHands, s.Hands)
	}

	return nil
}
