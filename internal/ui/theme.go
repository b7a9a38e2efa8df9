package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// GameHub theme (CLI + TUI).
// Tile colours follow the usual word-game palette.

const (
	IconWordle  = "🟩"
	IconHangman = "🪢"
	IconRunner  = "🦖"
	IconTrophy  = "🏆"
	IconCal     = "📅"
	IconBook    = "📖"
	IconSound   = "🔊"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold

	cTileCorrect = lipgloss.Color("28")
	cTilePresent = lipgloss.Color("178")
	cTileAbsent  = lipgloss.Color("240")
	cTileText    = lipgloss.Color("231")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	tileBase    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(cTileText)
	tileCorrect = tileBase.Background(cTileCorrect)
	tilePresent = tileBase.Background(cTilePresent)
	tileAbsent  = tileBase.Background(cTileAbsent)
	tileEmpty   = lipgloss.NewStyle().Padding(0, 1).Foreground(cMuted)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Tile renders one letter cell. state is a wordle letter state name.
func Tile(letter, state string) string {
	if letter == "" {
		letter = "·"
	}
	switch state {
	case "correct":
		return tileCorrect.Render(letter)
	case "present":
		return tilePresent.Render(letter)
	case "absent":
		return tileAbsent.Render(letter)
	default:
		return tileEmpty.Render(letter)
	}
}

// StatusText colours a round status.
func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "won":
		return Good.Render("won")
	case "lost", "gameover":
		return Bad.Render(status)
	case "playing":
		return H2.Render("playing")
	case "paused":
		return Warn.Render("paused")
	default:
		return Muted.Render(status)
	}
}
