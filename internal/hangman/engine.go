// internal/hangman/engine.go
//
// Hangman round state machine: setup → playing → won | lost.
//
// Guesses of letters already tried, guesses outside a running round and
// hints past the budget are ignored. Spaces in multi-word entries count as
// revealed from the start and never as wrong.

package hangman

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/words"
)

// ErrUnknownCategory is returned by Start for a category with no list.
var ErrUnknownCategory = errors.New("unknown category")

// WordLists supplies the category lists.
type WordLists interface {
	Words(category string) ([]string, bool)
	All() []string
}

// Engine owns one Session. It is not safe for concurrent use.
type Engine struct {
	lists   WordLists
	rng     *rand.Rand
	rec     stats.Recorder
	s       Session
	guessed map[rune]bool
}

// New returns an engine in the setup state. rec may be nil.
func New(lists WordLists, rng *rand.Rand, rec stats.Recorder) *Engine {
	return &Engine{lists: lists, rng: rng, rec: rec, s: Session{Status: Setup, Difficulty: Medium}}
}

// Start draws a word uniformly from category, or from every list when
// category is empty, and begins a round.
func (e *Engine) Start(category string, d Difficulty) error {
	var pool []string
	if category == "" {
		pool = e.lists.All()
	} else {
		l, ok := e.lists.Words(category)
		if !ok {
			return ErrUnknownCategory
		}
		pool = l
	}
	if len(pool) == 0 {
		return ErrUnknownCategory
	}
	e.begin(pool[e.rng.IntN(len(pool))], strings.ToLower(category), d)
	return nil
}

// StartWith begins a round with a fixed word.
func (e *Engine) StartWith(word, category string, d Difficulty) {
	e.begin(words.Normalize(word), strings.ToLower(category), d)
}

func (e *Engine) begin(word, category string, d Difficulty) {
	if _, err := ParseDifficulty(string(d)); err != nil || d == "" {
		d = Medium
	}
	e.s = Session{
		Word:           word,
		Category:       category,
		Difficulty:     d,
		GuessedLetters: []string{},
		Status:         Playing,
	}
	e.guessed = make(map[rune]bool)
}

// Session returns a copy of the current session.
func (e *Engine) Session() Session {
	s := e.s
	s.GuessedLetters = slices.Clone(e.s.GuessedLetters)
	return s
}

// Guess tries one letter. It reports whether the guess was applied; the
// error is only ever a *stats.PersistenceWriteError from a round ending.
func (e *Engine) Guess(ctx context.Context, letter string) (bool, error) {
	l := words.Normalize(letter)
	if e.s.Status != Playing || len(l) != 1 || !words.IsAlpha(l) {
		return false, nil
	}
	r := rune(l[0])
	if e.guessed[r] {
		return false, nil
	}
	e.guessed[r] = true
	e.s.GuessedLetters = append(e.s.GuessedLetters, l)

	if !strings.ContainsRune(e.s.Word, r) {
		e.s.WrongGuesses++
		if e.s.WrongGuesses >= e.s.Difficulty.Budget() {
			e.s.Status = Lost
			return true, e.record(ctx, stats.GameStats.Loss)
		}
		return true, nil
	}
	if e.complete() {
		e.s.Status = Won
		return true, e.record(ctx, stats.GameStats.Win)
	}
	return true, nil
}

// Hint reveals a random unguessed letter of the word through the normal
// guess path. It returns the letter, or "" when the hint was not available.
func (e *Engine) Hint(ctx context.Context) (string, error) {
	if e.s.Status != Playing || e.s.HintsUsed >= MaxHints {
		return "", nil
	}
	var pool []rune
	for _, r := range e.s.Word {
		if r != ' ' && !e.guessed[r] && !slices.Contains(pool, r) {
			pool = append(pool, r)
		}
	}
	if len(pool) == 0 {
		return "", nil
	}
	letter := string(pool[e.rng.IntN(len(pool))])
	_, err := e.Guess(ctx, letter)
	e.s.HintsUsed++
	return letter, err
}

func (e *Engine) complete() bool {
	for _, r := range e.s.Word {
		if r != ' ' && !e.guessed[r] {
			return false
		}
	}
	return true
}

func (e *Engine) record(ctx context.Context, fn func(stats.GameStats) stats.GameStats) error {
	if e.rec == nil {
		return nil
	}
	_, err := stats.Update(ctx, e.rec, stats.Hangman, fn)
	return err
}

// Display renders the word with unguessed letters as underscores, one cell
// per character separated by spaces; word gaps show as a wider gap.
func (e *Engine) Display() string {
	cells := make([]string, 0, len(e.s.Word))
	for _, r := range e.s.Word {
		switch {
		case r == ' ':
			cells = append(cells, " ")
		case e.guessed[r]:
			cells = append(cells, string(r))
		default:
			cells = append(cells, "_")
		}
	}
	return strings.Join(cells, " ")
}

// Remaining is the number of wrong guesses left before the round is lost.
func (e *Engine) Remaining() int {
	return max(e.s.Difficulty.Budget()-e.s.WrongGuesses, 0)
}

// Snapshot returns the renderer view.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Display:        e.Display(),
		Category:       e.s.Category,
		Difficulty:     e.s.Difficulty,
		GuessedLetters: slices.Clone(e.s.GuessedLetters),
		WrongGuesses:   e.s.WrongGuesses,
		Remaining:      e.Remaining(),
		HintsUsed:      e.s.HintsUsed,
		HintsLeft:      MaxHints - e.s.HintsUsed,
		Status:         e.s.Status,
	}
	if e.s.Status == Won || e.s.Status == Lost {
		snap.Word = e.s.Word
	}
	return snap
}
