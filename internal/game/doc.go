// Package game implements a four-seat, no-limit Texas Hold'em rule engine.
//
// The main type is Engine, which starts hands, accepts one action at a time
// from the seat whose turn it is, and publishes an ordered event stream.
//
// # Basic Usage
//
//	e := game.NewEngine(randutil.New(42), game.EngineConfig{})
//	id, err := e.StartHand([]int{100, 100, 100, 100})
//	// Seat 0 acts first on every street.
//	err = e.SubmitAction(0, game.BetAction(10))
//	state, _ := e.CurrentState()
//	if state.Complete {
//	    fmt.Println(state.Outcome.Winners)
//	}
//
// # Deterministic Testing
//
// Shuffles draw from the injected *rand.Rand, so a fixed seed replays the
// same hands. A stacked deck gives complete control over the cards:
//
//	deck, _ := poker.NewDeckFromCards(cards...)
//	h, err := game.NewHand(rng, stacks, game.WithDeck(deck))
//
// # Architecture
//
// Hand delegates responsibilities to specialized components:
//   - PotLedger: owns every chip; moves them only through Commit, BankStreet
//     and Award, and computes side pots
//   - BettingRound: validates actions, the min-raise and reopening rules, and
//     decides when a street is complete
//   - poker.EvaluateBest: ranks the best five of seven cards at showdown
//
// Every payout goes through a single PotLedger.Award call keyed by a
// transaction id, so a hand can never be paid twice.
package game
