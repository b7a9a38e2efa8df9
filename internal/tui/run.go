package tui

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/gamehub/internal/daily"
	"github.com/robalobadob/gamehub/internal/hangman"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/words"
)

// Env is what every terminal game needs.
type Env struct {
	Store  store.Store
	Player string
	Words  *words.Source
	Rand   *rand.Rand
	Now    func() time.Time
	Tick   time.Duration
}

func (e Env) profile() *store.Profile { return store.Bind(e.Store, e.Player) }

func run(m tea.Model, out io.Writer) error {
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunWordle plays today's puzzle, or a random one when free is set.
func RunWordle(ctx context.Context, env Env, free bool, out io.Writer) error {
	m, err := newWordleModel(ctx, env, daily.NewKeeper(env.Store, env.Words.Dictionary), free)
	if err != nil {
		return err
	}
	return run(m, out)
}

// RunHangman plays rounds from category ("" for any) at difficulty d.
func RunHangman(ctx context.Context, env Env, category string, d hangman.Difficulty, out io.Writer) error {
	m, err := newHangmanModel(ctx, env, category, d)
	if err != nil {
		return err
	}
	return run(m, out)
}

// RunRunner plays the dino runner.
func RunRunner(ctx context.Context, env Env, out io.Writer) error {
	return run(newRunnerModel(ctx, env), out)
}
