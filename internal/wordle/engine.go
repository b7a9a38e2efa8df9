// internal/wordle/engine.go
//
// Core game engine for a single Wordle round.
// Responsibilities:
//   - Evaluate guesses with the two-pass consumption algorithm.
//   - Validate guesses (length, accepted list) and apply them to the board.
//   - Track state transitions: playing → won/lost.
//   - Write the stats record exactly once when the round ends.
//
// Notes:
//   - The accepted-word list is supplied by the caller (see words.Dictionary).
//   - All letters are compared in uppercase.
//   - Commands issued after the round is over are ignored, not errors.

package wordle

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"unicode/utf8"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/words"
)

// Lexicon reports whether a word is an accepted guess.
type Lexicon interface {
	Contains(word string) bool
}

// Engine owns one Session. It is not safe for concurrent use.
type Engine struct {
	lex     Lexicon
	rec     stats.Recorder
	s       Session
	current []byte // letters typed but not yet submitted
}

// New starts a fresh round for solution. date is the daily key, or "" for
// free play. rec may be nil, in which case no stats are written.
func New(solution, date string, lex Lexicon, rec stats.Recorder) *Engine {
	return &Engine{lex: lex, rec: rec, s: newSession(words.Normalize(solution), date)}
}

// ErrNoAnswers is returned by NewRandom for an empty answer list.
var ErrNoAnswers = errors.New("no answers to draw from")

// NewRandom starts a free-play round with a solution drawn uniformly from
// answers.
func NewRandom(rng *rand.Rand, answers []string, lex Lexicon, rec stats.Recorder) (*Engine, error) {
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}
	return New(answers[rng.IntN(len(answers))], "", lex, rec), nil
}

// ErrBadSession is returned by Restore for a saved session that cannot be
// played: unknown status, row out of range or an invalid solution.
var ErrBadSession = errors.New("malformed wordle session")

// Restore resumes a previously saved session.
func Restore(s Session, lex Lexicon, rec stats.Recorder) (*Engine, error) {
	s.Solution = words.Normalize(s.Solution)
	if s.Status == "" {
		s.Status = Playing
	}
	switch {
	case s.Status != Playing && s.Status != Won && s.Status != Lost:
		return nil, fmt.Errorf("%w: status %q", ErrBadSession, s.Status)
	case s.CurrentRow < 0 || s.CurrentRow >= Rows:
		return nil, fmt.Errorf("%w: row %d", ErrBadSession, s.CurrentRow)
	case utf8.RuneCountInString(s.Solution) != Cols || !words.IsAlpha(s.Solution):
		return nil, fmt.Errorf("%w: solution %q", ErrBadSession, s.Solution)
	}
	return &Engine{lex: lex, rec: rec, s: s}, nil
}

// Session returns a copy of the current session.
func (e *Engine) Session() Session { return e.s }

// Status reports the round status.
func (e *Engine) Status() Status { return e.s.Status }

// Submit validates and applies guess.
//
// Validation rules:
//   - Guess must be exactly Cols letters (*InvalidLengthError).
//   - Guess must be accepted by the lexicon (*NotInDictionaryError).
//
// State transitions:
//   - guess == solution → won.
//   - else on the last row → lost.
//   - else advance to the next row.
//
// On a terminal transition the stats record is updated once. A failed write
// comes back as *stats.PersistenceWriteError alongside an applied Result.
func (e *Engine) Submit(ctx context.Context, guess string) (Result, error) {
	if e.s.Status != Playing {
		return Result{Status: e.s.Status}, nil
	}
	guess = words.Normalize(guess)
	if n := utf8.RuneCountInString(guess); n != Cols {
		return Result{Status: e.s.Status}, &InvalidLengthError{Length: n}
	}
	if e.lex == nil || !e.lex.Contains(guess) {
		return Result{Status: e.s.Status}, &NotInDictionaryError{Word: guess}
	}

	marks := Evaluate(guess, e.s.Solution)
	var row [Cols]Tile
	for i, r := range []rune(guess) {
		row[i] = Tile{Letter: string(r), State: marks[i]}
	}
	rowsUsed := e.s.CurrentRow + 1
	e.s.Guesses[e.s.CurrentRow] = row

	res := Result{Applied: true, Row: row}
	switch {
	case guess == e.s.Solution:
		e.s.Status = Won
	case e.s.CurrentRow == Rows-1:
		e.s.Status = Lost
	default:
		e.s.CurrentRow++
	}
	res.Status = e.s.Status

	if e.s.Status == Playing || e.rec == nil {
		return res, nil
	}
	won := e.s.Status == Won
	next, err := stats.Update(ctx, e.rec, stats.Wordle, func(s stats.GameStats) stats.GameStats {
		if won {
			return s.WinIn(rowsUsed)
		}
		return s.Loss()
	})
	if err == nil {
		res.Stats = &next
	}
	return res, err
}

// Type appends a letter to the pending guess. Non-letters, a full buffer or
// a finished round make it a no-op.
func (e *Engine) Type(letter string) bool {
	l := words.Normalize(letter)
	if e.s.Status != Playing || len(e.current) >= Cols || len(l) != 1 || !words.IsAlpha(l) {
		return false
	}
	e.current = append(e.current, l[0])
	return true
}

// Backspace removes the last pending letter.
func (e *Engine) Backspace() bool {
	if e.s.Status != Playing || len(e.current) == 0 {
		return false
	}
	e.current = e.current[:len(e.current)-1]
	return true
}

// Current is the pending guess.
func (e *Engine) Current() string { return string(e.current) }

// Enter submits the pending guess. The buffer is cleared only when the guess
// was applied, so a rejected word stays on screen for editing.
func (e *Engine) Enter(ctx context.Context) (Result, error) {
	res, err := e.Submit(ctx, string(e.current))
	if res.Applied {
		e.current = e.current[:0]
	}
	return res, err
}

// Keyboard returns the best-known state of every letter guessed so far.
func (e *Engine) Keyboard() map[string]LetterState {
	kb := make(map[string]LetterState)
	for _, row := range e.s.Guesses {
		for _, t := range row {
			if t.Letter == "" {
				continue
			}
			if t.State.rank() > kb[t.Letter].rank() {
				kb[t.Letter] = t.State
			}
		}
	}
	return kb
}

// Snapshot returns the renderer view.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Guesses:    e.s.Guesses,
		CurrentRow: e.s.CurrentRow,
		Current:    string(e.current),
		Status:     e.s.Status,
		Date:       e.s.Date,
		Keyboard:   e.Keyboard(),
	}
	if e.s.Status != Playing {
		snap.Solution = e.s.Solution
	}
	return snap
}

// Evaluate scores guess against solution.
//
// Pass 1:
//   - Exact matches are Correct and consume their solution position.
//
// Pass 2:
//   - Every other guess letter takes the leftmost unconsumed matching
//     solution position and becomes Present, or is Absent when none is left.
//
// A letter is therefore never credited more often than it occurs in the
// solution.
func Evaluate(guess, solution string) []LetterState {
	g := []rune(guess)
	s := []rune(solution)
	res := make([]LetterState, len(g))
	used := make([]bool, len(s))

	for i := range g {
		if i < len(s) && g[i] == s[i] {
			res[i] = Correct
			used[i] = true
		} else {
			res[i] = Absent
		}
	}

	for i := range g {
		if res[i] == Correct {
			continue
		}
		for j := range s {
			if !used[j] && g[i] == s[j] {
				res[i] = Present
				used[j] = true
				break
			}
		}
	}
	return res
}
