package wordle

import (
	"fmt"
	"strings"
)

// Share renders the spoiler-free result grid of a finished round, e.g.
//
//	Wordle 2024-01-01 3/6
//
//	⬛🟨⬛⬛⬛
//	🟩🟩⬛🟨⬛
//	🟩🟩🟩🟩🟩
//
// It reports false while the round is still being played.
func (e *Engine) Share() (string, bool) {
	if e.s.Status == Playing {
		return "", false
	}
	attempts := "X"
	last := Rows - 1
	if e.s.Status == Won {
		attempts = fmt.Sprint(e.s.CurrentRow + 1)
		last = e.s.CurrentRow
	}

	var b strings.Builder
	b.WriteString("Wordle ")
	if e.s.Date != "" {
		b.WriteString(e.s.Date + " ")
	}
	fmt.Fprintf(&b, "%s/%d\n\n", attempts, Rows)
	for i := 0; i <= last; i++ {
		for _, t := range e.s.Guesses[i] {
			switch t.State {
			case Correct:
				b.WriteString("🟩")
			case Present:
				b.WriteString("🟨")
			default:
				b.WriteString("⬛")
			}
		}
		b.WriteString("\n")
	}
	return b.String(), true
}
