package daily

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/wordle"
)

// SessionStore persists one opaque session blob per player and game.
// LoadSession returns nil data and a nil error when nothing is saved.
type SessionStore interface {
	LoadSession(ctx context.Context, player string, game stats.GameID) ([]byte, error)
	SaveSession(ctx context.Context, player string, game stats.GameID, data []byte) error
}

// WordList is the dictionary the daily puzzle draws from.
type WordList interface {
	wordle.Lexicon
	Answers() []string
}

// Keeper restores and saves daily Wordle rounds.
type Keeper struct {
	store SessionStore
	words WordList
}

func NewKeeper(st SessionStore, wl WordList) *Keeper {
	return &Keeper{store: st, words: wl}
}

// Resume returns the player's round for the day containing now. A saved
// round from the same day is restored as-is (finished or not); anything else
// is discarded in favour of a fresh round for today's solution.
func (k *Keeper) Resume(ctx context.Context, player string, now time.Time, rec stats.Recorder) (*wordle.Engine, error) {
	key := DateKey(now)
	data, err := k.store.LoadSession(ctx, player, stats.Wordle)
	if err != nil {
		return nil, fmt.Errorf("load daily session: %w", err)
	}
	if data != nil {
		var s wordle.Session
		if err := json.Unmarshal(data, &s); err == nil && s.Date == key && s.Solution != "" {
			if e, err := wordle.Restore(s, k.words, rec); err == nil {
				return e, nil
			}
		}
	}
	sol, err := Solution(key, k.words.Answers())
	if err != nil {
		return nil, err
	}
	return wordle.New(sol, key, k.words, rec), nil
}

// Save stores the engine's session so a reload on the same day resumes it.
func (k *Keeper) Save(ctx context.Context, player string, e *wordle.Engine) error {
	data, err := json.Marshal(e.Session())
	if err != nil {
		return err
	}
	if err := k.store.SaveSession(ctx, player, stats.Wordle, data); err != nil {
		return fmt.Errorf("save daily session: %w", err)
	}
	return nil
}
