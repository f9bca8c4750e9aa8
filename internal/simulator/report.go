package simulator

// SeatReport is one seat's line in a Report.
type SeatReport struct {
	Seat        int     `json:"seat"`
	Name        string  `json:"name"`
	Strategy    string  `json:"strategy"`
	Hands       int     `json:"hands"`
	Net         float64 `json:"net"`
	MeanPerHand float64 `json:"mean_per_hand"`
}

// Report is the machine readable form of a run, written by the CLI.
type Report struct {
	Seed        int64        `json:"seed"`
	Tables      int          `json:"tables"`
	Hands       int          `json:"hands"`
	Showdowns   int          `json:"showdowns"`
	Uncontested int          `json:"uncontested"`
	RunOuts     int          `json:"run_outs"`
	Aborted     int          `json:"aborted"`
	Rebuys      int          `json:"rebuys"`
	Timeouts    int          `json:"timeouts"`
	Fallbacks   int          `json:"fallbacks"`
	MaxPot      int          `json:"max_pot"`
	BigPots     int          `json:"big_pots"`
	ElapsedMS   int64        `json:"elapsed_ms"`
	Seats       []SeatReport `json:"seats"`
}

// NewReport summarises stats for the run configured by cfg.
func NewReport(cfg Config, stats *Stats) Report {
	r := Report{
		Seed:        cfg.Seed,
		Tables:      stats.Tables,
		Hands:       stats.Hands,
		Showdowns:   stats.Showdowns,
		Uncontested: stats.Uncontested,
		RunOuts:     stats.RunOuts,
		Aborted:     stats.Aborted,
		Rebuys:      stats.Rebuys,
		Timeouts:    stats.Runner.Timeouts,
		Fallbacks:   stats.Runner.Fallbacks,
		MaxPot:      stats.Results.MaxPot,
		BigPots:     stats.Results.BigPots,
		ElapsedMS:   stats.Elapsed.Milliseconds(),
	}
	for i, seat := range cfg.Seats {
		st := stats.Results.Seats[i]
		r.Seats = append(r.Seats, SeatReport{
			Seat:        i,
			Name:        seat.Name,
			Strategy:    seat.Strategy,
			Hands:       st.Hands,
			Net:         st.SumNet,
			MeanPerHand: st.Mean(),
		})
	}
	return r
}
