// internal/stats/stats.go
//
// Durable per-game aggregate counters shared by all three engines.
// Responsibilities:
//   - GameStats record shape (played/won/streaks/average/high score).
//   - Pure update rules applied exactly once at the end of a round.
//   - Recorder / PreferenceSource interfaces implemented by the store package.
//
// Records are never decremented; streak resets are the only "downward" change.

package stats

import (
	"context"
	"math"
)

// GameID names the game a stats record belongs to.
type GameID string

const (
	Wordle  GameID = "wordle"
	Hangman GameID = "hangman"
	Runner  GameID = "dino"
)

// Games lists every known game in display order.
var Games = []GameID{Wordle, Hangman, Runner}

// Valid reports whether g is one of the known games.
func (g GameID) Valid() bool {
	for _, k := range Games {
		if g == k {
			return true
		}
	}
	return false
}

// GameStats is the aggregate record for one game and one player profile.
type GameStats struct {
	Played         int     `json:"played"`
	Won            int     `json:"won"`
	CurrentStreak  int     `json:"currentStreak"`
	MaxStreak      int     `json:"maxStreak"`
	AverageGuesses float64 `json:"averageGuesses,omitempty"`
	HighScore      int     `json:"highScore,omitempty"`
}

// Win records a won round.
func (s GameStats) Win() GameStats {
	s.Played++
	s.Won++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	return s
}

// WinIn records a won round that took rows guesses and folds it into the
// running average. The average is taken over wins only; losses never enter
// the denominator.
func (s GameStats) WinIn(rows int) GameStats {
	s.AverageGuesses = (s.AverageGuesses*float64(s.Won) + float64(rows)) / float64(s.Won+1)
	return s.Win()
}

// Loss records a lost round and breaks the streak.
func (s GameStats) Loss() GameStats {
	s.Played++
	s.CurrentStreak = 0
	return s
}

// RunOver records a finished runner session.
func (s GameStats) RunOver(score int) GameStats {
	s.Played++
	if score > s.HighScore {
		s.HighScore = score
	}
	return s
}

// WinRate is the rounded percentage of played rounds that were won.
func (s GameStats) WinRate() int {
	if s.Played == 0 {
		return 0
	}
	return int(math.Round(float64(s.Won) / float64(s.Played) * 100))
}

// Recorder is the persistence collaborator engines write through.
// GetStats returns a zeroed record when none exists.
type Recorder interface {
	GetStats(ctx context.Context, game GameID) (GameStats, error)
	SetStats(ctx context.Context, game GameID, s GameStats) error
}

// Update reads the current record for game, applies fn and writes it back.
// Any failure is reported as a *PersistenceWriteError.
func Update(ctx context.Context, rec Recorder, game GameID, fn func(GameStats) GameStats) (GameStats, error) {
	cur, err := rec.GetStats(ctx, game)
	if err != nil {
		return GameStats{}, &PersistenceWriteError{Game: game, Err: err}
	}
	next := fn(cur)
	if err := rec.SetStats(ctx, game, next); err != nil {
		return next, &PersistenceWriteError{Game: game, Err: err}
	}
	return next, nil
}
