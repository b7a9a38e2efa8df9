// internal/store/store.go
//
// Persistence collaborator shared by every game.
// Implementations: memory (this package), SQL (SQLite/Postgres) and Redis.
//
// Records are keyed by player profile id. A missing stats record reads as a
// zeroed one and missing preferences read as stats.DefaultPreferences.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/gamehub/internal/stats"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
)

// Account is a registered player profile.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ScoreEntry is one leaderboard row.
type ScoreEntry struct {
	Player   string `json:"player"`
	Username string `json:"username,omitempty"`
	Score    int    `json:"score"`
}

// Store defines the persistence interface.
type Store interface {
	GetStats(ctx context.Context, player string, game stats.GameID) (stats.GameStats, error)
	SetStats(ctx context.Context, player string, game stats.GameID, s stats.GameStats) error

	GetPreferences(ctx context.Context, player string) (stats.Preferences, error)
	SetPreferences(ctx context.Context, player string, p stats.Preferences) error

	// LoadSession returns nil data and a nil error when nothing is saved.
	LoadSession(ctx context.Context, player string, game stats.GameID) ([]byte, error)
	SaveSession(ctx context.Context, player string, game stats.GameID, data []byte) error

	// CreateAccount fails with ErrUsernameTaken on a case-insensitive clash.
	CreateAccount(ctx context.Context, a Account) error
	FindAccountByName(ctx context.Context, username string) (*Account, error)
	FindAccountByID(ctx context.Context, id string) (*Account, error)

	// TopScores lists the best high scores for game, best first.
	TopScores(ctx context.Context, game stats.GameID, limit int) ([]ScoreEntry, error)

	Close() error
}

// Profile binds a Store to one player. It is the stats.Recorder and
// stats.PreferenceSource handed to engines.
type Profile struct {
	st     Store
	player string
}

// Bind returns the Profile view of player.
func Bind(st Store, player string) *Profile {
	return &Profile{st: st, player: player}
}

func (p *Profile) Player() string { return p.player }

func (p *Profile) GetStats(ctx context.Context, game stats.GameID) (stats.GameStats, error) {
	return p.st.GetStats(ctx, p.player, game)
}

func (p *Profile) SetStats(ctx context.Context, game stats.GameID, s stats.GameStats) error {
	return p.st.SetStats(ctx, p.player, game, s)
}

func (p *Profile) GetPreferences(ctx context.Context) (stats.Preferences, error) {
	return p.st.GetPreferences(ctx, p.player)
}

// AllStats loads the record of every game for player.
func AllStats(ctx context.Context, st Store, player string) (map[stats.GameID]stats.GameStats, error) {
	out := make(map[stats.GameID]stats.GameStats, len(stats.Games))
	for _, g := range stats.Games {
		s, err := st.GetStats(ctx, player, g)
		if err != nil {
			return nil, err
		}
		out[g] = s
	}
	return out, nil
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
