package hangman

import (
	"fmt"
	"strings"
)

// Difficulty sets the wrong-guess budget.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Budget is the number of wrong guesses that ends the round.
func (d Difficulty) Budget() int {
	switch d {
	case Easy:
		return 8
	case Hard:
		return 4
	default:
		return 6
	}
}

// ParseDifficulty maps "" to Medium and rejects unknown names. Case is
// ignored.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	case "":
		return Medium, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Status of a round.
type Status string

const (
	Setup   Status = "setup"
	Playing Status = "playing"
	Won     Status = "won"
	Lost    Status = "lost"
)

// MaxHints is how many hints one round may use.
const MaxHints = 2

// Session is the state of one round.
type Session struct {
	Word           string     `json:"word"`
	Category       string     `json:"category"` // "" when drawn from every list
	Difficulty     Difficulty `json:"difficulty"`
	GuessedLetters []string   `json:"guessedLetters"` // in guess order
	WrongGuesses   int        `json:"wrongGuesses"`
	HintsUsed      int        `json:"hintsUsed"`
	Status         Status     `json:"status"`
}

// Snapshot is the renderer view. Word is only set once the round is over.
type Snapshot struct {
	Display        string     `json:"display"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	GuessedLetters []string   `json:"guessedLetters"`
	WrongGuesses   int        `json:"wrongGuesses"`
	Remaining      int        `json:"remaining"`
	HintsUsed      int        `json:"hintsUsed"`
	HintsLeft      int        `json:"hintsLeft"`
	Status         Status     `json:"status"`
	Word           string     `json:"word,omitempty"`
}
