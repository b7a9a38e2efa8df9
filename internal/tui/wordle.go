package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/gamehub/internal/daily"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/ui"
	"github.com/robalobadob/gamehub/internal/wordle"
)

const keyboardRows = "QWERTYUIOP\nASDFGHJKL\nZXCVBNM"

type wordleModel struct {
	ctx    context.Context
	env    Env
	keeper *daily.Keeper
	free   bool

	eng     *wordle.Engine
	lastLog string
	stats   *stats.GameStats
}

func newWordleModel(ctx context.Context, env Env, keeper *daily.Keeper, free bool) (wordleModel, error) {
	m := wordleModel{ctx: ctx, env: env, keeper: keeper, free: free}
	if err := m.newRound(); err != nil {
		return m, err
	}
	return m, nil
}

func (m *wordleModel) newRound() error {
	var err error
	if m.free {
		dict := m.env.Words.Dictionary
		m.eng, err = wordle.NewRandom(m.env.Rand, dict.Answers(), dict, m.env.profile())
	} else {
		m.eng, err = m.keeper.Resume(m.ctx, m.env.Player, m.env.Now(), m.env.profile())
	}
	m.stats = nil
	m.lastLog = "Type a word and press enter."
	return err
}

func (m wordleModel) Init() tea.Cmd { return nil }

func (m wordleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyBackspace:
		m.eng.Backspace()
		return m, nil
	case tea.KeyEnter:
		if m.eng.Status() != wordle.Playing {
			if m.free {
				if err := m.newRound(); err != nil {
					m.lastLog = err.Error()
				}
			}
			return m, nil
		}
		m.submit()
		return m, nil
	case tea.KeyRunes:
		for _, r := range key.Runes {
			m.eng.Type(string(r))
		}
	}
	return m, nil
}

func (m *wordleModel) submit() {
	res, err := m.eng.Enter(m.ctx)
	var (
		lenErr  *wordle.InvalidLengthError
		dictErr *wordle.NotInDictionaryError
		pe      *stats.PersistenceWriteError
	)
	switch {
	case errors.As(err, &lenErr):
		m.lastLog = ui.Warn.Render("Not enough letters")
		return
	case errors.As(err, &dictErr):
		m.lastLog = ui.Warn.Render("Not in word list")
		return
	case errors.As(err, &pe):
		m.lastLog = ui.Bad.Render(pe.Error())
	case err != nil:
		m.lastLog = ui.Bad.Render(err.Error())
		return
	default:
		m.lastLog = ""
	}
	if !res.Applied {
		return
	}
	m.stats = res.Stats
	if !m.free {
		if err := m.keeper.Save(m.ctx, m.env.Player, m.eng); err != nil {
			m.lastLog = ui.Bad.Render(err.Error())
		}
	}
}

func (m wordleModel) View() string {
	snap := m.eng.Snapshot()
	var b strings.Builder

	title := "Wordle (free play)"
	if snap.Date != "" {
		title = "Wordle " + snap.Date
	}
	b.WriteString(ui.Heading(ui.IconWordle, title) + "\n\n")

	for i, row := range snap.Guesses {
		for j, t := range row {
			letter, state := t.Letter, string(t.State)
			if i == snap.CurrentRow && snap.Status == wordle.Playing && j < len(snap.Current) {
				letter, state = snap.Current[j:j+1], ""
			}
			b.WriteString(ui.Tile(letter, state))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, line := range strings.Split(keyboardRows, "\n") {
		for _, r := range line {
			l := string(r)
			b.WriteString(ui.Tile(l, string(snap.Keyboard[l])))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch snap.Status {
	case wordle.Won, wordle.Lost:
		b.WriteString(ui.LabelValue("Result", ui.StatusText(string(snap.Status))) + "  ")
		b.WriteString(ui.LabelValue("Answer", snap.Solution) + "\n")
		if share, ok := m.eng.Share(); ok {
			b.WriteString("\n" + share + "\n")
		}
		if m.stats != nil {
			b.WriteString(renderStats(*m.stats) + "\n")
		}
		if m.free {
			b.WriteString(ui.Muted.Render("enter: new word · esc: quit") + "\n")
		} else {
			b.WriteString(ui.Muted.Render("Come back tomorrow · esc: quit") + "\n")
		}
	default:
		b.WriteString(ui.Muted.Render("letters: type · backspace: delete · enter: submit · esc: quit") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("\n" + m.lastLog + "\n")
	}
	return b.String()
}

func renderStats(s stats.GameStats) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		ui.LabelValue("Played", s.Played),
		ui.LabelValue("Win %", s.WinRate()),
		ui.LabelValue("Streak", s.CurrentStreak),
		ui.LabelValue("Max", s.MaxStreak))
}
