package wordle_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/wordle"
	"github.com/robalobadob/gamehub/internal/words"
)

var (
	C = wordle.Correct
	P = wordle.Present
	A = wordle.Absent
)

func testDict() *words.Dictionary {
	return words.NewDictionary(
		[]string{"CRANE"},
		[]string{"SLATE", "TRACE", "ABBEY", "ALLOY", "GHOST", "PLUMB", "FJORD"},
	)
}

func newTestEngine(t *testing.T, date string) (*wordle.Engine, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	return wordle.New("crane", date, testDict(), store.Bind(st, "p1")), st
}

func states(row [wordle.Cols]wordle.Tile) []wordle.LetterState {
	out := make([]wordle.LetterState, len(row))
	for i, t := range row {
		out[i] = t.State
	}
	return out
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		guess, solution string
		want            []wordle.LetterState
	}{
		{"ABCDE", "ABCDE", []wordle.LetterState{C, C, C, C, C}},
		{"EEAAA", "AAAAA", []wordle.LetterState{A, A, C, C, C}},
		{"SLATE", "CRANE", []wordle.LetterState{A, A, C, A, C}},
		{"TRACE", "CRANE", []wordle.LetterState{A, C, C, P, C}},
		{"LLAMA", "HELLO", []wordle.LetterState{P, P, A, A, A}},
		// The exact L consumes the only L, so the first L gets nothing.
		{"LLAMA", "CLOWN", []wordle.LetterState{A, C, A, A, A}},
		{"ALLOY", "HELLO", []wordle.LetterState{A, P, C, P, A}},
		{"ABBEY", "BABES", []wordle.LetterState{P, P, C, C, A}},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.solution, func(t *testing.T) {
			assert.Equal(t, tt.want, wordle.Evaluate(tt.guess, tt.solution))
		})
	}
}

func TestEvaluateNeverOvercreditsALetter(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const alphabet = "ABCDE"
	randWord := func() string {
		var b strings.Builder
		for range wordle.Cols {
			b.WriteByte(alphabet[rng.IntN(len(alphabet))])
		}
		return b.String()
	}
	for range 2000 {
		g, s := randWord(), randWord()
		marks := wordle.Evaluate(g, s)
		credited := map[byte]int{}
		for i := range g {
			if marks[i] != wordle.Absent {
				credited[g[i]]++
			}
		}
		for l, n := range credited {
			require.LessOrEqual(t, n, strings.Count(s, string(l)), "guess %s solution %s letter %c", g, s, l)
		}
	}
}

func TestSubmitRejectsBadGuesses(t *testing.T) {
	e, _ := newTestEngine(t, "")
	ctx := context.Background()

	res, err := e.Submit(ctx, "cra")
	var lenErr *wordle.InvalidLengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, 3, lenErr.Length)
	assert.False(t, res.Applied)

	_, err = e.Submit(ctx, "zzzzz")
	var dictErr *wordle.NotInDictionaryError
	require.ErrorAs(t, err, &dictErr)
	assert.Equal(t, "ZZZZZ", dictErr.Word)

	assert.Equal(t, 0, e.Session().CurrentRow, "rejected guesses use no row")
}

func TestSubmitWinRecordsStatsOnce(t *testing.T) {
	e, st := newTestEngine(t, "")
	ctx := context.Background()

	res, err := e.Submit(ctx, "slate")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, wordle.Playing, res.Status)
	assert.Equal(t, []wordle.LetterState{A, A, C, A, C}, states(res.Row))
	assert.Nil(t, res.Stats)

	res, err = e.Submit(ctx, "Crane")
	require.NoError(t, err)
	assert.Equal(t, wordle.Won, res.Status)
	require.NotNil(t, res.Stats)
	assert.Equal(t, stats.GameStats{Played: 1, Won: 1, CurrentStreak: 1, MaxStreak: 1, AverageGuesses: 2}, *res.Stats)

	// Finished rounds ignore further guesses.
	res, err = e.Submit(ctx, "trace")
	require.NoError(t, err)
	assert.False(t, res.Applied)

	got, err := st.GetStats(ctx, "p1", stats.Wordle)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Played)
}

func TestSubmitLossAfterSixRows(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, st.SetStats(ctx, "p1", stats.Wordle, stats.GameStats{Played: 2, Won: 2, CurrentStreak: 2, MaxStreak: 2, AverageGuesses: 3}))

	e := wordle.New("CRANE", "", testDict(), store.Bind(st, "p1"))
	guesses := []string{"SLATE", "TRACE", "ABBEY", "ALLOY", "GHOST", "PLUMB"}
	for i, g := range guesses {
		res, err := e.Submit(ctx, g)
		require.NoError(t, err)
		if i < len(guesses)-1 {
			assert.Equal(t, wordle.Playing, res.Status)
		} else {
			assert.Equal(t, wordle.Lost, res.Status)
		}
	}

	got, err := st.GetStats(ctx, "p1", stats.Wordle)
	require.NoError(t, err)
	assert.Equal(t, stats.GameStats{Played: 3, Won: 2, CurrentStreak: 0, MaxStreak: 2, AverageGuesses: 3}, got)

	snap := e.Snapshot()
	assert.Equal(t, "CRANE", snap.Solution)
}

func TestRepeatedGuessConsumesARow(t *testing.T) {
	e, _ := newTestEngine(t, "")
	ctx := context.Background()
	for range 2 {
		res, err := e.Submit(ctx, "SLATE")
		require.NoError(t, err)
		assert.True(t, res.Applied)
	}
	assert.Equal(t, 2, e.Session().CurrentRow)
}

type brokenRecorder struct{}

func (brokenRecorder) GetStats(context.Context, stats.GameID) (stats.GameStats, error) {
	return stats.GameStats{}, nil
}

func (brokenRecorder) SetStats(context.Context, stats.GameID, stats.GameStats) error {
	return errors.New("storage offline")
}

func TestPersistenceFailureKeepsTheWin(t *testing.T) {
	e := wordle.New("CRANE", "", testDict(), brokenRecorder{})
	res, err := e.Submit(context.Background(), "CRANE")

	var pe *stats.PersistenceWriteError
	require.ErrorAs(t, err, &pe)
	assert.True(t, res.Applied)
	assert.Equal(t, wordle.Won, res.Status)
	assert.Equal(t, wordle.Won, e.Status())
}

func TestInputBuffer(t *testing.T) {
	e, _ := newTestEngine(t, "")
	ctx := context.Background()

	for _, l := range []string{"s", "l", "1", "a", "t", "e", "x"} {
		e.Type(l)
	}
	assert.Equal(t, "SLATE", e.Current(), "digits and overflow are dropped")

	assert.True(t, e.Backspace())
	assert.Equal(t, "SLAT", e.Current())

	_, err := e.Enter(ctx)
	require.Error(t, err)
	assert.Equal(t, "SLAT", e.Current(), "a rejected guess stays in the buffer")

	e.Type("e")
	res, err := e.Enter(ctx)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, "", e.Current())
}

func TestKeyboardKeepsBestState(t *testing.T) {
	e, _ := newTestEngine(t, "")
	ctx := context.Background()
	_, err := e.Submit(ctx, "TRACE")
	require.NoError(t, err)
	kb := e.Keyboard()
	assert.Equal(t, wordle.Present, kb["C"])
	assert.Equal(t, wordle.Absent, kb["T"])

	_, err = e.Submit(ctx, "CRANE")
	require.NoError(t, err)
	assert.Equal(t, wordle.Correct, e.Keyboard()["C"])
	assert.Empty(t, e.Snapshot().Current)
}

func TestShare(t *testing.T) {
	e, _ := newTestEngine(t, "2024-01-01")
	ctx := context.Background()

	_, ok := e.Share()
	assert.False(t, ok)

	for _, g := range []string{"SLATE", "TRACE", "CRANE"} {
		_, err := e.Submit(ctx, g)
		require.NoError(t, err)
	}
	share, ok := e.Share()
	require.True(t, ok)
	assert.Equal(t, "Wordle 2024-01-01 3/6\n\n⬛⬛🟩⬛🟩\n⬛🟩🟩🟨🟩\n🟩🟩🟩🟩🟩\n", share)
}

func TestNewRandomDrawsFromAnswers(t *testing.T) {
	_, err := wordle.NewRandom(rand.New(rand.NewPCG(1, 2)), nil, testDict(), nil)
	require.ErrorIs(t, err, wordle.ErrNoAnswers)

	e, err := wordle.NewRandom(rand.New(rand.NewPCG(1, 2)), []string{"CRANE"}, testDict(), nil)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", e.Session().Solution)
	assert.Empty(t, e.Session().Date)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, "2024-01-01")
	_, err := e.Submit(ctx, "slate")
	require.NoError(t, err)

	back, err := wordle.Restore(e.Session(), testDict(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, back.Session().CurrentRow)
	res, err := back.Submit(ctx, "crane")
	require.NoError(t, err)
	assert.Equal(t, wordle.Won, res.Status)
}

func TestRestoreRejectsMalformedSession(t *testing.T) {
	good, _ := newTestEngine(t, "")
	for name, mutate := range map[string]func(*wordle.Session){
		"row past the board": func(s *wordle.Session) { s.CurrentRow = wordle.Rows },
		"negative row":       func(s *wordle.Session) { s.CurrentRow = -1 },
		"unknown status":     func(s *wordle.Session) { s.Status = "paused" },
		"short solution":     func(s *wordle.Session) { s.Solution = "CAT" },
		"non-letters":        func(s *wordle.Session) { s.Solution = "CR4NE" },
	} {
		t.Run(name, func(t *testing.T) {
			s := good.Session()
			mutate(&s)
			e, err := wordle.Restore(s, testDict(), nil)
			assert.ErrorIs(t, err, wordle.ErrBadSession)
			assert.Nil(t, e)
		})
	}
}
