package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/holdem-engine/internal/game"
)

// PrintSummary writes a human readable report of stats.
func PrintSummary(w io.Writer, stats *Stats, seats [game.NumSeats]Seat) {
	res := &stats.Results
	low, high := res.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== SIMULATION ===\n")
	fmt.Fprintf(w, "Tables: %d, hands played: %d (%s)\n", stats.Tables, stats.Hands, stats.Elapsed.Round(time.Millisecond))
	if stats.Hands > 0 {
		fmt.Fprintf(w, "Showdowns: %d (%.1f%%), uncontested: %d, run-outs: %d, aborted: %d\n",
			stats.Showdowns, pct(stats.Showdowns, stats.Hands), stats.Uncontested, stats.RunOuts, stats.Aborted)
	}
	fmt.Fprintf(w, "Rebuys: %d\n", stats.Rebuys)
	fmt.Fprintf(w, "Decisions: %d, timeouts: %d, rejections: %d, fallbacks: %d\n",
		stats.Runner.Decisions, stats.Runner.Timeouts, stats.Runner.Rejections, stats.Runner.Fallbacks)

	fmt.Fprintf(w, "\n=== SEAT RESULTS ===\n")
	for i, seat := range seats {
		st := res.Seats[i]
		if st.Hands == 0 {
			fmt.Fprintf(w, "Seat %d %-10s %-15s sat out\n", i, seat.Name, seat.Strategy)
			continue
		}
		fmt.Fprintf(w, "Seat %d %-10s %-15s %6d hands, %+8.3f chips/hand\n", i, seat.Name, seat.Strategy, st.Hands, st.Mean())
	}

	fmt.Fprintf(w, "\n=== DISTRIBUTION (per seat-hand) ===\n")
	fmt.Fprintf(w, "Mean: %.4f, median: %.4f, std dev: %.4f\n", res.Mean(), res.Median(), res.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		res.Percentile(0.05), res.Percentile(0.25), res.Percentile(0.75), res.Percentile(0.95))

	totalWins := res.ShowdownWins + res.NonShowdownWins
	if totalWins > 0 {
		fmt.Fprintf(w, "Winning results: %d at showdown (%.1f%%), %d without (%.1f%%)\n",
			res.ShowdownWins, pct(res.ShowdownWins, totalWins), res.NonShowdownWins, pct(res.NonShowdownWins, totalWins))
	}
	fmt.Fprintf(w, "Max pot: %d chips, big pots (>= %d): %d\n", res.MaxPot, res.BigPotThreshold, res.BigPots)
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}
