package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/game"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	streetStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	abortStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// eventPrinter renders each event as styled hand-history lines as it is
// published.
type eventPrinter struct {
	w         io.Writer
	formatter *game.EventFormatter
}

func newEventPrinter(w io.Writer, opts game.FormattingOptions) *eventPrinter {
	return &eventPrinter{w: w, formatter: game.NewEventFormatter(opts)}
}

func (p *eventPrinter) OnEvent(event game.Event) {
	text := p.formatter.Format(event)
	if text == "" {
		return
	}

	for line := range strings.SplitSeq(text, "\n") {
		fmt.Fprintln(p.w, styleLine(event, line))
	}
}

func styleLine(event game.Event, line string) string {
	switch event.(type) {
	case game.HandStarted:
		if strings.HasPrefix(line, "Hand #") {
			return headerStyle.Render(line)
		}
		return dimStyle.Render(line)
	case game.StreetAdvanced, game.HandsRevealed:
		if strings.HasPrefix(line, "***") {
			return streetStyle.Render(line)
		}
	case game.HandEnded:
		if strings.HasPrefix(line, "***") {
			return streetStyle.Render(line)
		}
		if strings.Contains(line, " collected ") {
			return winStyle.Render(line)
		}
	case game.HandAborted:
		return abortStyle.Render(line)
	}
	return line
}
