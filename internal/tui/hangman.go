package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/gamehub/internal/hangman"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/ui"
)

// gallows frames, indexed by how much of the budget is spent (0..6).
var gallows = []string{
	"  +---+\n      |\n      |\n      |\n     ===",
	"  +---+\n  O   |\n      |\n      |\n     ===",
	"  +---+\n  O   |\n  |   |\n      |\n     ===",
	"  +---+\n  O   |\n /|   |\n      |\n     ===",
	"  +---+\n  O   |\n /|\\  |\n      |\n     ===",
	"  +---+\n  O   |\n /|\\  |\n /    |\n     ===",
	"  +---+\n  O   |\n /|\\  |\n / \\  |\n     ===",
}

type hangmanModel struct {
	ctx        context.Context
	env        Env
	category   string
	difficulty hangman.Difficulty

	eng     *hangman.Engine
	lastLog string
}

func newHangmanModel(ctx context.Context, env Env, category string, d hangman.Difficulty) (hangmanModel, error) {
	m := hangmanModel{ctx: ctx, env: env, category: category, difficulty: d}
	m.eng = hangman.New(env.Words.Categories, env.Rand, env.profile())
	if err := m.eng.Start(category, d); err != nil {
		if errors.Is(err, hangman.ErrUnknownCategory) {
			return m, fmt.Errorf("unknown category %q (have %s)", category, strings.Join(env.Words.Categories.Names(), ", "))
		}
		return m, err
	}
	return m, nil
}

func (m hangmanModel) Init() tea.Cmd { return nil }

func (m hangmanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if st := m.eng.Session().Status; st == hangman.Won || st == hangman.Lost {
			m.lastLog = ""
			if err := m.eng.Start(m.category, m.difficulty); err != nil {
				m.lastLog = ui.Bad.Render(err.Error())
			}
		}
		return m, nil
	case tea.KeyRunes:
		for _, r := range key.Runes {
			if r == '?' {
				letter, err := m.eng.Hint(m.ctx)
				m.note(err)
				if letter == "" && err == nil {
					m.lastLog = ui.Warn.Render("No hints left")
				} else if err == nil {
					m.lastLog = ui.LabelValue("Hint", letter)
				}
				continue
			}
			applied, err := m.eng.Guess(m.ctx, string(r))
			m.note(err)
			if !applied && err == nil {
				m.lastLog = ui.Muted.Render(fmt.Sprintf("%q ignored", r))
			} else if err == nil {
				m.lastLog = ""
			}
		}
	}
	return m, nil
}

func (m *hangmanModel) note(err error) {
	var pe *stats.PersistenceWriteError
	if errors.As(err, &pe) {
		m.lastLog = ui.Bad.Render(pe.Error())
	} else if err != nil {
		m.lastLog = ui.Bad.Render(err.Error())
	}
}

func (m hangmanModel) View() string {
	snap := m.eng.Snapshot()
	var b strings.Builder

	cat := snap.Category
	if cat == "" {
		cat = "any"
	}
	b.WriteString(ui.Heading(ui.IconHangman, "Hangman") + "  ")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("%s · %s", cat, snap.Difficulty)) + "\n\n")

	budget := snap.WrongGuesses + snap.Remaining
	frame := 0
	if budget > 0 {
		frame = snap.WrongGuesses * (len(gallows) - 1) / budget
	}
	b.WriteString(gallows[frame] + "\n\n")
	b.WriteString(ui.Title.Render(snap.Display) + "\n\n")

	b.WriteString(ui.LabelValue("Guessed", strings.Join(snap.GuessedLetters, " ")) + "\n")
	b.WriteString(ui.LabelValue("Remaining", snap.Remaining) + "  ")
	b.WriteString(ui.LabelValue("Hints", snap.HintsLeft) + "\n\n")

	switch snap.Status {
	case hangman.Won, hangman.Lost:
		b.WriteString(ui.LabelValue("Result", ui.StatusText(string(snap.Status))) + "  ")
		b.WriteString(ui.LabelValue("Word", snap.Word) + "\n")
		if s, err := m.env.Store.GetStats(m.ctx, m.env.Player, stats.Hangman); err == nil {
			b.WriteString(renderStats(s) + "\n")
		}
		b.WriteString(ui.Muted.Render("enter: new round · esc: quit") + "\n")
	default:
		b.WriteString(ui.Muted.Render("letters: guess · ?: hint · esc: quit") + "\n")
	}
	if m.lastLog != "" {
		b.WriteString("\n" + m.lastLog + "\n")
	}
	return b.String()
}
