// internal/store/redis.go
//
// Redis implementation of Store.
// Responsibilities:
//   - Keep stats, preferences, sessions and accounts as JSON string values.
//   - Mirror every positive high score into a per-game sorted set so the
//     leaderboard is a single ZREVRANGE.
//
// Key layout (prefix configurable, default "gamehub:"):
//   stats:<player>:<game>     JSON stats.GameStats
//   prefs:<player>            JSON stats.Preferences
//   session:<player>:<game>   opaque session bytes
//   account:<id>              JSON account record
//   accounts                  hash lower(username) → id
//   leaderboard:<game>        ZSET player → high score

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/robalobadob/gamehub/internal/stats"
)

type redisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures OpenRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// OpenRedis connects to Redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, opts RedisOptions) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(client, opts.Prefix), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) Store {
	if prefix == "" {
		prefix = "gamehub:"
	}
	return &redisStore{client: client, prefix: prefix}
}

func (r *redisStore) key(parts ...string) string {
	return r.prefix + strings.Join(parts, ":")
}

// redisAccount carries the password hash, which Account hides from JSON.
type redisAccount struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *redisStore) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *redisStore) GetStats(ctx context.Context, player string, game stats.GameID) (stats.GameStats, error) {
	var g stats.GameStats
	if _, err := r.getJSON(ctx, r.key("stats", player, string(game)), &g); err != nil {
		return stats.GameStats{}, fmt.Errorf("stats get: %w", err)
	}
	return g, nil
}

func (r *redisStore) SetStats(ctx context.Context, player string, game stats.GameID, g stats.GameStats) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key("stats", player, string(game)), data, 0)
		if g.HighScore > 0 {
			pipe.ZAdd(ctx, r.key("leaderboard", string(game)), &redis.Z{
				Score:  float64(g.HighScore),
				Member: player,
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("stats set: %w", err)
	}
	return nil
}

func (r *redisStore) GetPreferences(ctx context.Context, player string) (stats.Preferences, error) {
	var p stats.Preferences
	ok, err := r.getJSON(ctx, r.key("prefs", player), &p)
	if err != nil {
		return stats.Preferences{}, fmt.Errorf("preferences get: %w", err)
	}
	if !ok {
		return stats.DefaultPreferences(), nil
	}
	return p, nil
}

func (r *redisStore) SetPreferences(ctx context.Context, player string, p stats.Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key("prefs", player), data, 0).Err(); err != nil {
		return fmt.Errorf("preferences set: %w", err)
	}
	return nil
}

func (r *redisStore) LoadSession(ctx context.Context, player string, game stats.GameID) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key("session", player, string(game))).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	return data, nil
}

func (r *redisStore) SaveSession(ctx context.Context, player string, game stats.GameID, data []byte) error {
	if err := r.client.Set(ctx, r.key("session", player, string(game)), data, 0).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (r *redisStore) CreateAccount(ctx context.Context, a Account) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	data, err := json.Marshal(redisAccount(a))
	if err != nil {
		return err
	}
	claimed, err := r.client.HSetNX(ctx, r.key("accounts"), strings.ToLower(a.Username), a.ID).Result()
	if err != nil {
		return fmt.Errorf("account claim: %w", err)
	}
	if !claimed {
		return ErrUsernameTaken
	}
	if err := r.client.Set(ctx, r.key("account", a.ID), data, 0).Err(); err != nil {
		r.client.HDel(ctx, r.key("accounts"), strings.ToLower(a.Username))
		return fmt.Errorf("account insert: %w", err)
	}
	return nil
}

func (r *redisStore) FindAccountByName(ctx context.Context, username string) (*Account, error) {
	id, err := r.client.HGet(ctx, r.key("accounts"), strings.ToLower(username)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	return r.FindAccountByID(ctx, id)
}

func (r *redisStore) FindAccountByID(ctx context.Context, id string) (*Account, error) {
	var ra redisAccount
	ok, err := r.getJSON(ctx, r.key("account", id), &ra)
	if err != nil {
		return nil, fmt.Errorf("account get: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	a := Account(ra)
	return &a, nil
}

func (r *redisStore) TopScores(ctx context.Context, game stats.GameID, limit int) ([]ScoreEntry, error) {
	limit = defaultLimit(limit)
	members, err := r.client.ZRevRangeWithScores(ctx, r.key("leaderboard", string(game)), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	out := make([]ScoreEntry, 0, len(members))
	for _, m := range members {
		player, _ := m.Member.(string)
		e := ScoreEntry{Player: player, Score: int(m.Score)}
		if a, err := r.FindAccountByID(ctx, player); err == nil {
			e.Username = a.Username
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *redisStore) Close() error { return r.client.Close() }
