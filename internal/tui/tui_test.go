package tui

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/gamehub/internal/daily"
	"github.com/robalobadob/gamehub/internal/hangman"
	"github.com/robalobadob/gamehub/internal/runner"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/wordle"
	"github.com/robalobadob/gamehub/internal/words"
)

func testEnv(t *testing.T) Env {
	t.Helper()
	src, err := words.Load(words.Files{})
	require.NoError(t, err)
	src.Categories = words.NewCategories([]string{"pets"}, map[string][]string{"pets": {"cat"}})
	return Env{
		Store:  store.NewMemoryStore(),
		Player: "local",
		Words:  src,
		Rand:   rand.New(rand.NewPCG(5, 6)),
		Now:    func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) },
		Tick:   time.Millisecond,
	}
}

func typeKeys(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func enter(m tea.Model) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestWordleModelDailyRound(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()
	wm, err := newWordleModel(ctx, env, daily.NewKeeper(env.Store, env.Words.Dictionary), false)
	require.NoError(t, err)

	var m tea.Model = wm
	m = typeKeys(m, "zzzzz")
	m = enter(m)
	assert.Contains(t, m.(wordleModel).lastLog, "Not in word list")

	for i := 0; i < 5; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = typeKeys(m, "angle")
	m = enter(m)
	got := m.(wordleModel)
	assert.Equal(t, wordle.Won, got.eng.Status())
	require.NotNil(t, got.stats)
	assert.Equal(t, 1, got.stats.Won)
	assert.Contains(t, got.View(), "ANGLE")

	saved, err := env.Store.LoadSession(ctx, "local", stats.Wordle)
	require.NoError(t, err)
	assert.NotNil(t, saved, "daily round is saved after each guess")
}

func TestHangmanModel(t *testing.T) {
	env := testEnv(t)
	_, err := newHangmanModel(context.Background(), env, "cars", hangman.Medium)
	assert.ErrorContains(t, err, "pets")

	hm, err := newHangmanModel(context.Background(), env, "pets", hangman.Easy)
	require.NoError(t, err)

	var m tea.Model = hm
	m = typeKeys(m, "c")
	m = typeKeys(m, "c")
	assert.Contains(t, m.(hangmanModel).lastLog, "ignored")

	m = typeKeys(m, "at")
	assert.Equal(t, hangman.Won, m.(hangmanModel).eng.Session().Status)
	assert.Contains(t, m.View(), "CAT")

	m = enter(m)
	assert.Equal(t, hangman.Playing, m.(hangmanModel).eng.Session().Status, "enter starts a new round")
}

func TestRunnerModel(t *testing.T) {
	env := testEnv(t)
	var m tea.Model = newRunnerModel(context.Background(), env)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	require.Equal(t, runner.Playing, m.(runnerModel).eng.Status())

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(tickMsg(time.Now()))
		assert.NotNil(t, cmd, "every tick schedules the next")
	}
	assert.Equal(t, uint64(3), m.(runnerModel).eng.Snapshot().Frame)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.Equal(t, runner.Paused, m.(runnerModel).eng.Status())
}

func TestRenderField(t *testing.T) {
	e := runner.New(runner.DefaultConfig(), rand.New(rand.NewPCG(1, 1)), nil, nil)
	out := renderField(e.Snapshot())
	lines := strings.Split(out, "\n")
	assert.Equal(t, fieldRows+1, len(lines))
	assert.Contains(t, out, "@")
}
