// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for guests-only deployments, the terminal client and tests.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/robalobadob/gamehub/internal/stats"
)

type recordKey struct {
	player string
	game   stats.GameID
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	stats    map[recordKey]stats.GameStats
	prefs    map[string]stats.Preferences
	sessions map[recordKey][]byte
	accounts map[string]Account // keyed by id
	byName   map[string]string  // lower(username) → id
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		stats:    make(map[recordKey]stats.GameStats),
		prefs:    make(map[string]stats.Preferences),
		sessions: make(map[recordKey][]byte),
		accounts: make(map[string]Account),
		byName:   make(map[string]string),
	}
}

func (m *memory) GetStats(ctx context.Context, player string, game stats.GameID) (stats.GameStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats[recordKey{player, game}], nil
}

func (m *memory) SetStats(ctx context.Context, player string, game stats.GameID, s stats.GameStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[recordKey{player, game}] = s
	return nil
}

func (m *memory) GetPreferences(ctx context.Context, player string) (stats.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.prefs[player]; ok {
		return p, nil
	}
	return stats.DefaultPreferences(), nil
}

func (m *memory) SetPreferences(ctx context.Context, player string, p stats.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[player] = p
	return nil
}

func (m *memory) LoadSession(ctx context.Context, player string, game stats.GameID) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.sessions[recordKey{player, game}]), nil
}

func (m *memory) SaveSession(ctx context.Context, player string, game stats.GameID, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[recordKey{player, game}] = slices.Clone(data)
	return nil
}

func (m *memory) CreateAccount(ctx context.Context, a Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(a.Username)
	if _, taken := m.byName[key]; taken {
		return ErrUsernameTaken
	}
	m.byName[key] = a.ID
	m.accounts[a.ID] = a
	return nil
}

func (m *memory) FindAccountByName(ctx context.Context, username string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[strings.ToLower(username)]
	if !ok {
		return nil, ErrNotFound
	}
	a := m.accounts[id]
	return &a, nil
}

func (m *memory) FindAccountByID(ctx context.Context, id string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *memory) TopScores(ctx context.Context, game stats.GameID, limit int) ([]ScoreEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ScoreEntry
	for k, s := range m.stats {
		if k.game != game || s.HighScore <= 0 {
			continue
		}
		out = append(out, ScoreEntry{Player: k.player, Username: m.accounts[k.player].Username, Score: s.HighScore})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Player < out[j].Player
	})
	if limit = defaultLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Close() error { return nil }
