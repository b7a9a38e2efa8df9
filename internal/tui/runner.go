package tui

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/gamehub/internal/cue"
	"github.com/robalobadob/gamehub/internal/runner"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/ui"
)

const (
	fieldCols = 80
	fieldRows = 9
)

type tickMsg time.Time

type runnerModel struct {
	ctx   context.Context
	env   Env
	eng   *runner.Engine
	cues  *cue.Buffer
	sound bool

	flash   string
	lastLog string
}

func newRunnerModel(ctx context.Context, env Env) runnerModel {
	m := runnerModel{ctx: ctx, env: env, cues: &cue.Buffer{}, sound: true}
	if p, err := env.profile().GetPreferences(ctx); err == nil {
		m.sound = p.SoundEnabled
	}
	sound := m.sound
	m.eng = runner.New(runner.DefaultConfig(), env.Rand, env.profile(), cue.Gate(func() bool { return sound }, m.cues))
	return m
}

func (m runnerModel) tick() tea.Cmd {
	interval := m.env.Tick
	if interval <= 0 {
		interval = runner.DefaultTick
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m runnerModel) Init() tea.Cmd { return m.tick() }

func (m runnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		_, err := m.eng.Advance(m.ctx)
		m.note(err)
		if c := m.cues.Drain(); len(c) > 0 {
			m.flash = ui.IconSound + " " + string(c[len(c)-1])
		}
		return m, m.tick()
	case tea.KeyMsg:
		var c runner.Command
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "space", "up", "w":
			c = runner.CmdJump
			if st := m.eng.Status(); st == runner.Idle || st == runner.GameOver {
				c = runner.CmdStart
			}
		case "enter":
			c = runner.CmdStart
		case "p":
			c = runner.CmdToggle
		case "r":
			c = runner.CmdReset
		default:
			return m, nil
		}
		_, err := m.eng.Apply(m.ctx, c)
		m.note(err)
	}
	return m, nil
}

func (m *runnerModel) note(err error) {
	var pe *stats.PersistenceWriteError
	switch {
	case err == nil:
	case errors.As(err, &pe):
		m.lastLog = ui.Bad.Render(pe.Error())
	default:
		m.lastLog = ui.Bad.Render(err.Error())
	}
}

func (m runnerModel) View() string {
	snap := m.eng.Snapshot()
	var b strings.Builder

	b.WriteString(ui.Heading(ui.IconRunner, "Dino Runner") + "  ")
	b.WriteString(ui.LabelValue("Score", snap.DisplayScore) + "  ")
	b.WriteString(ui.LabelValue("High", snap.HighScore/10) + "  ")
	b.WriteString(ui.StatusText(string(snap.Status)) + "\n\n")
	b.WriteString(renderField(snap) + "\n")

	switch snap.Status {
	case runner.Idle:
		b.WriteString(ui.Muted.Render("space/enter: start · q: quit") + "\n")
	case runner.GameOver:
		b.WriteString(ui.Bad.Render("GAME OVER") + "  " + ui.Muted.Render("space/enter: play again · q: quit") + "\n")
	default:
		b.WriteString(ui.Muted.Render("space/up: jump · p: pause · r: reset · q: quit") + "\n")
	}
	if m.sound && m.flash != "" {
		b.WriteString(ui.Muted.Render(m.flash) + "\n")
	}
	if m.lastLog != "" {
		b.WriteString(m.lastLog + "\n")
	}
	return b.String()
}

// renderField rasterises the canvas into a character grid.
func renderField(snap runner.Snapshot) string {
	sx := snap.Width / fieldCols
	sy := snap.GroundY / fieldRows

	grid := make([][]rune, fieldRows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", fieldCols))
	}
	fill := func(x, y, w, h float64, ch rune) {
		c0 := int(math.Floor(x / sx))
		c1 := int(math.Ceil((x+w)/sx)) - 1
		r0 := int(math.Floor(y / sy))
		r1 := int(math.Ceil((y+h)/sy)) - 1
		for r := max(r0, 0); r <= min(r1, fieldRows-1); r++ {
			for c := max(c0, 0); c <= min(c1, fieldCols-1); c++ {
				grid[r][c] = ch
			}
		}
	}
	for _, o := range snap.Obstacles {
		ch := '#'
		if o.Kind == runner.Flying {
			ch = 'v'
		}
		fill(o.X, o.Y, o.Width, o.Height, ch)
	}
	a := snap.Actor
	fill(a.X, a.Y, a.Width, a.Height, '@')

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(ui.Muted.Render(strings.Repeat("▔", fieldCols)))
	return b.String()
}
