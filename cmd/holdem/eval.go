package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/poker"
)

// EvalCmd ranks a set of cards.
type EvalCmd struct {
	Cards []string `arg:"" help:"Cards like 'As Kd 7h 7c 2s' (5 to 7, or 2 for a preflop category)"`
}

func (c *EvalCmd) Run(_ *Globals) error {
	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}

	if len(cards) == 2 {
		category := poker.CategorizeHoleCards(cards[0], cards[1])
		fmt.Printf("%s %s\n", headerStyle.Render(poker.FormatCards(cards)), categoryStyle.Render(string(category)))
		return nil
	}

	score, err := poker.EvaluateBest(cards)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", headerStyle.Render(poker.FormatCards(cards)), categoryStyle.Render(score.String()))
	return nil
}
