package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/gamehub/internal/stats"
)

// backends returns every Store implementation reachable from the test
// environment. Redis joins only when GAMEHUB_TEST_REDIS names a server.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	out := map[string]Store{"memory": NewMemoryStore()}

	sq, err := OpenSQL(ctx, DriverSQLite, filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)
	out["sqlite"] = sq

	if addr := os.Getenv("GAMEHUB_TEST_REDIS"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		prefix := "gamehub-test:" + time.Now().Format("150405.000000") + ":"
		out["redis"] = NewRedisStore(client, prefix)
	}
	t.Cleanup(func() {
		for _, st := range out {
			_ = st.Close()
		}
	})
	return out
}

func TestStatsRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := st.GetStats(ctx, "p1", stats.Wordle)
			require.NoError(t, err)
			assert.Equal(t, stats.GameStats{}, got, "missing record reads as zero")

			want := stats.GameStats{Played: 4, Won: 3, CurrentStreak: 2, MaxStreak: 3, AverageGuesses: 3.5}
			require.NoError(t, st.SetStats(ctx, "p1", stats.Wordle, want))
			got, err = st.GetStats(ctx, "p1", stats.Wordle)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			want.Played = 5
			require.NoError(t, st.SetStats(ctx, "p1", stats.Wordle, want))
			got, err = st.GetStats(ctx, "p1", stats.Wordle)
			require.NoError(t, err)
			assert.Equal(t, 5, got.Played, "writes overwrite")

			other, err := st.GetStats(ctx, "p2", stats.Wordle)
			require.NoError(t, err)
			assert.Zero(t, other.Played, "records are per player")

			all, err := AllStats(ctx, st, "p1")
			require.NoError(t, err)
			assert.Len(t, all, len(stats.Games))
			assert.Equal(t, 5, all[stats.Wordle].Played)
			assert.Zero(t, all[stats.Hangman].Played)
		})
	}
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := st.GetPreferences(ctx, "p1")
			require.NoError(t, err)
			assert.Equal(t, stats.DefaultPreferences(), got)

			want := stats.Preferences{Theme: stats.ThemeDark, SoundEnabled: false, Language: "de"}
			require.NoError(t, st.SetPreferences(ctx, "p1", want))
			got, err = Bind(st, "p1").GetPreferences(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			data, err := st.LoadSession(ctx, "p1", stats.Wordle)
			require.NoError(t, err)
			assert.Nil(t, data)

			require.NoError(t, st.SaveSession(ctx, "p1", stats.Wordle, []byte(`{"a":1}`)))
			require.NoError(t, st.SaveSession(ctx, "p1", stats.Wordle, []byte(`{"a":2}`)))
			data, err = st.LoadSession(ctx, "p1", stats.Wordle)
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(data))

			data, err = st.LoadSession(ctx, "p1", stats.Hangman)
			require.NoError(t, err)
			assert.Nil(t, data)
		})
	}
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := Account{ID: "acc-1", Username: "Alice", PasswordHash: "hash", CreatedAt: time.Now()}
			require.NoError(t, st.CreateAccount(ctx, a))
			assert.ErrorIs(t, st.CreateAccount(ctx, Account{ID: "acc-2", Username: "alice"}), ErrUsernameTaken)

			got, err := st.FindAccountByName(ctx, "ALICE")
			require.NoError(t, err)
			assert.Equal(t, "acc-1", got.ID)
			assert.Equal(t, "Alice", got.Username)
			assert.Equal(t, "hash", got.PasswordHash)

			got, err = st.FindAccountByID(ctx, "acc-1")
			require.NoError(t, err)
			assert.Equal(t, "Alice", got.Username)

			_, err = st.FindAccountByID(ctx, "acc-2")
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = st.FindAccountByName(ctx, "bob")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestTopScores(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, st.CreateAccount(ctx, Account{ID: "p2", Username: "bob"}))
			for player, score := range map[string]int{"p1": 120, "p2": 300, "p3": 90, "p4": 0} {
				require.NoError(t, st.SetStats(ctx, player, stats.Runner, stats.GameStats{Played: 1, HighScore: score}))
			}
			require.NoError(t, st.SetStats(ctx, "p5", stats.Wordle, stats.GameStats{Played: 1, HighScore: 999}))

			top, err := st.TopScores(ctx, stats.Runner, 0)
			require.NoError(t, err)
			assert.Equal(t, []ScoreEntry{
				{Player: "p2", Username: "bob", Score: 300},
				{Player: "p1", Score: 120},
				{Player: "p3", Score: 90},
			}, top)

			top, err = st.TopScores(ctx, stats.Runner, 1)
			require.NoError(t, err)
			require.Len(t, top, 1)
			assert.Equal(t, "p2", top[0].Player)
		})
	}
}

func TestProfileIsARecorder(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	var rec stats.Recorder = Bind(st, "p9")

	next, err := stats.Update(ctx, rec, stats.Hangman, stats.GameStats.Win)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Won)

	got, err := st.GetStats(ctx, "p9", stats.Hangman)
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestMigrationsApplyOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "hub.db")

	st, err := OpenSQL(ctx, DriverSQLite, path)
	require.NoError(t, err)
	require.NoError(t, st.SetStats(ctx, "p1", stats.Hangman, stats.GameStats{Played: 2}))
	require.NoError(t, st.Close())

	st, err = OpenSQL(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.GetStats(ctx, "p1", stats.Hangman)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Played)

	var n int
	require.NoError(t, st.(*sqlStore).db.QueryRowContext(ctx, `SELECT COUNT(*) FROM _migrations`).Scan(&n))
	files, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	assert.Equal(t, len(files), n)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &memory{}, st)

	st, err = Open(ctx, Options{Backend: "sql", Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: "sql", Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	q := `SELECT a FROM t WHERE x = ? AND y = ?`
	assert.Equal(t, q, rebind(DriverSQLite3, q))
	assert.Equal(t, `SELECT a FROM t WHERE x = $1 AND y = $2`, rebind(DriverPostgres, q))
}

func TestSplitStatements(t *testing.T) {
	body := "-- header\nCREATE TABLE a (x INT);\n\n-- next\nCREATE INDEX i ON a (x);\n"
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, splitStatements(body))
}
