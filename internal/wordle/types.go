// internal/wordle/types.go
//
// Core type definitions for the Wordle engine.
// Defines:
//   - LetterState: per-letter evaluation result.
//   - Tile: one cell of the board.
//   - Session: the whole state of one round, owned by an Engine.

package wordle

import "github.com/robalobadob/gamehub/internal/stats"

const (
	Rows = 6 // guesses per round
	Cols = 5 // letters per guess
)

// LetterState is the evaluation result for a single letter of a guess.
//   - "correct": right letter, right position.
//   - "present": letter occurs elsewhere in the solution (and was not already
//     credited to another position).
//   - "absent":  no unconsumed occurrence left.
//   - "empty":   tile not filled yet.
type LetterState string

const (
	Correct LetterState = "correct"
	Present LetterState = "present"
	Absent  LetterState = "absent"
	Empty   LetterState = "empty"
)

// rank orders states for keyboard colouring: correct beats present beats absent.
func (s LetterState) rank() int {
	switch s {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	}
	return 0
}

// Status is the coarse state of a round.
type Status string

const (
	Playing Status = "playing"
	Won     Status = "won"
	Lost    Status = "lost"
)

// Tile is one board cell.
type Tile struct {
	Letter string      `json:"letter"`
	State  LetterState `json:"state"`
}

// Board is the fixed 6x5 grid.
type Board [Rows][Cols]Tile

// Session holds the state of a single round.
type Session struct {
	Solution   string `json:"solution"`       // uppercase, immutable
	Guesses    Board  `json:"guesses"`        // evaluated rows
	CurrentRow int    `json:"currentRow"`     // row the next guess lands in
	Status     Status `json:"status"`         // playing | won | lost
	Date       string `json:"date,omitempty"` // YYYY-MM-DD for daily rounds
}

// newSession returns a blank playing session for solution.
func newSession(solution, date string) Session {
	s := Session{Solution: solution, Status: Playing, Date: date}
	for r := range s.Guesses {
		for c := range s.Guesses[r] {
			s.Guesses[r][c] = Tile{State: Empty}
		}
	}
	return s
}

// Snapshot is the read-only view handed to renderers. Solution is only
// filled in once the round is over.
type Snapshot struct {
	Guesses    Board                  `json:"guesses"`
	CurrentRow int                    `json:"currentRow"`
	Current    string                 `json:"current"`
	Status     Status                 `json:"status"`
	Date       string                 `json:"date,omitempty"`
	Solution   string                 `json:"solution,omitempty"`
	Keyboard   map[string]LetterState `json:"keyboard"`
}

// Result describes the outcome of one submit.
type Result struct {
	Applied bool             `json:"applied"`
	Row     [Cols]Tile       `json:"row"`
	Status  Status           `json:"status"`
	Stats   *stats.GameStats `json:"stats,omitempty"`
}
