// internal/store/sql.go
//
// SQL implementation of Store (SQLite via mattn or modernc, or Postgres).
// Responsibilities:
//   - Persist stats, preferences, saved sessions and accounts.
//   - Upsert records with ON CONFLICT so writes are idempotent per key.
//   - Serve the high-score leaderboard with a single ordered query.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/gamehub/internal/stats"
)

type sqlStore struct {
	db     *sql.DB
	driver string
}

// OpenSQL opens the database, applies migrations and returns the Store.
func OpenSQL(ctx context.Context, driver, dsn string) (Store, error) {
	db, err := openDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlStore{db: db, driver: driver}, nil
}

func (s *sqlStore) q(query string) string { return rebind(s.driver, query) }

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func (s *sqlStore) GetStats(ctx context.Context, player string, game stats.GameID) (stats.GameStats, error) {
	var g stats.GameStats
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT played, won, current_streak, max_streak, average_guesses, high_score
		FROM game_stats WHERE player_id = ? AND game = ?`), player, string(game),
	).Scan(&g.Played, &g.Won, &g.CurrentStreak, &g.MaxStreak, &g.AverageGuesses, &g.HighScore)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.GameStats{}, nil
	}
	if err != nil {
		return stats.GameStats{}, fmt.Errorf("stats get: %w", err)
	}
	return g, nil
}

func (s *sqlStore) SetStats(ctx context.Context, player string, game stats.GameID, g stats.GameStats) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO game_stats
			(player_id, game, played, won, current_streak, max_streak, average_guesses, high_score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id, game) DO UPDATE SET
			played = excluded.played,
			won = excluded.won,
			current_streak = excluded.current_streak,
			max_streak = excluded.max_streak,
			average_guesses = excluded.average_guesses,
			high_score = excluded.high_score,
			updated_at = excluded.updated_at`),
		player, string(game), g.Played, g.Won, g.CurrentStreak, g.MaxStreak, g.AverageGuesses, g.HighScore, now(),
	)
	if err != nil {
		return fmt.Errorf("stats set: %w", err)
	}
	return nil
}

func (s *sqlStore) GetPreferences(ctx context.Context, player string) (stats.Preferences, error) {
	var (
		p     stats.Preferences
		theme string
	)
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT theme, sound_enabled, language FROM preferences WHERE player_id = ?`), player,
	).Scan(&theme, &p.SoundEnabled, &p.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.DefaultPreferences(), nil
	}
	if err != nil {
		return stats.Preferences{}, fmt.Errorf("preferences get: %w", err)
	}
	p.Theme = stats.Theme(theme)
	return p, nil
}

func (s *sqlStore) SetPreferences(ctx context.Context, player string, p stats.Preferences) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO preferences (player_id, theme, sound_enabled, language)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (player_id) DO UPDATE SET
			theme = excluded.theme,
			sound_enabled = excluded.sound_enabled,
			language = excluded.language`),
		player, string(p.Theme), p.SoundEnabled, p.Language,
	)
	if err != nil {
		return fmt.Errorf("preferences set: %w", err)
	}
	return nil
}

func (s *sqlStore) LoadSession(ctx context.Context, player string, game stats.GameID) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT data FROM sessions WHERE player_id = ? AND game = ?`), player, string(game),
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	return []byte(data), nil
}

func (s *sqlStore) SaveSession(ctx context.Context, player string, game stats.GameID, data []byte) error {
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO sessions (player_id, game, data, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (player_id, game) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`),
		player, string(game), string(data), now(),
	)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *sqlStore) CreateAccount(ctx context.Context, a Account) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, s.q(`SELECT 1 FROM accounts WHERE lower(username) = ?`),
			strings.ToLower(a.Username)).Scan(&exists)
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("account lookup: %w", err)
		}
		if _, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO accounts (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`),
			a.ID, a.Username, a.PasswordHash, a.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("account insert: %w", err)
		}
		return nil
	})
}

func (s *sqlStore) findAccount(ctx context.Context, where string, arg any) (*Account, error) {
	var (
		a       Account
		created string
	)
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT id, username, password_hash, created_at FROM accounts WHERE `+where), arg,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account get: %w", err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &a, nil
}

func (s *sqlStore) FindAccountByName(ctx context.Context, username string) (*Account, error) {
	return s.findAccount(ctx, `lower(username) = ?`, strings.ToLower(username))
}

func (s *sqlStore) FindAccountByID(ctx context.Context, id string) (*Account, error) {
	return s.findAccount(ctx, `id = ?`, id)
}

func (s *sqlStore) TopScores(ctx context.Context, game stats.GameID, limit int) ([]ScoreEntry, error) {
	limit = defaultLimit(limit)
	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT g.player_id, COALESCE(a.username, ''), g.high_score
		FROM game_stats g
		LEFT JOIN accounts a ON a.id = g.player_id
		WHERE g.game = ? AND g.high_score > 0
		ORDER BY g.high_score DESC, g.player_id ASC
		LIMIT ?`), string(game), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	defer rows.Close()

	out := make([]ScoreEntry, 0, limit)
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.Player, &e.Username, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqlStore) Close() error { return s.db.Close() }
