package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecorder struct {
	m       map[GameID]GameStats
	failGet error
	failSet error
}

func (r *memRecorder) GetStats(ctx context.Context, g GameID) (GameStats, error) {
	if r.failGet != nil {
		return GameStats{}, r.failGet
	}
	return r.m[g], nil
}

func (r *memRecorder) SetStats(ctx context.Context, g GameID, s GameStats) error {
	if r.failSet != nil {
		return r.failSet
	}
	r.m[g] = s
	return nil
}

func TestWinAndLossStreaks(t *testing.T) {
	s := GameStats{}.Win().Win().Win()
	assert.Equal(t, GameStats{Played: 3, Won: 3, CurrentStreak: 3, MaxStreak: 3}, s)

	s = s.Loss()
	assert.Equal(t, 4, s.Played)
	assert.Equal(t, 3, s.Won)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 3, s.MaxStreak, "a loss never lowers the max streak")

	s = s.Win()
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 3, s.MaxStreak)
}

func TestWinInAveragesOverWinsOnly(t *testing.T) {
	s := GameStats{}.WinIn(3)
	assert.InDelta(t, 3.0, s.AverageGuesses, 1e-9)

	s = s.Loss()
	assert.InDelta(t, 3.0, s.AverageGuesses, 1e-9)

	s = s.WinIn(6)
	assert.InDelta(t, 4.5, s.AverageGuesses, 1e-9)
	assert.Equal(t, 2, s.Won)
	assert.Equal(t, 3, s.Played)
}

func TestRunOverKeepsBestScore(t *testing.T) {
	s := GameStats{}.RunOver(120).RunOver(80)
	assert.Equal(t, 2, s.Played)
	assert.Equal(t, 120, s.HighScore)
	assert.Equal(t, 0, s.Won)
	assert.Equal(t, 0, s.CurrentStreak)
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		name string
		s    GameStats
		want int
	}{
		{"none played", GameStats{}, 0},
		{"all won", GameStats{Played: 4, Won: 4}, 100},
		{"two of three", GameStats{Played: 3, Won: 2}, 67},
		{"one of three", GameStats{Played: 3, Won: 1}, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.WinRate())
		})
	}
}

func TestUpdateWritesThrough(t *testing.T) {
	rec := &memRecorder{m: map[GameID]GameStats{}}
	got, err := Update(context.Background(), rec, Hangman, GameStats.Win)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Won)
	assert.Equal(t, got, rec.m[Hangman])
}

func TestUpdateWrapsStorageFailures(t *testing.T) {
	boom := errors.New("disk full")

	rec := &memRecorder{m: map[GameID]GameStats{}, failSet: boom}
	next, err := Update(context.Background(), rec, Wordle, GameStats.Loss)
	var pe *PersistenceWriteError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, Wordle, pe.Game)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, next.Played, "the computed record is still returned")

	rec = &memRecorder{m: map[GameID]GameStats{}, failGet: boom}
	_, err = Update(context.Background(), rec, Runner, GameStats.Win)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, Runner, pe.Game)
}

func TestGameIDValid(t *testing.T) {
	for _, g := range Games {
		assert.True(t, g.Valid(), g)
	}
	assert.False(t, GameID("chess").Valid())
}

func TestPreferencesValidate(t *testing.T) {
	require.NoError(t, DefaultPreferences().Validate())
	assert.Error(t, Preferences{Theme: "neon", Language: "en"}.Validate())
	assert.Error(t, Preferences{Theme: ThemeDark}.Validate())
}
