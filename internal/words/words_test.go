package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "CRANE", Normalize("  crane\n"))
	assert.Equal(t, "NEW YORK", Normalize("new york"))
	assert.True(t, IsAlpha("CRANE"))
	assert.False(t, IsAlpha("crane"))
	assert.False(t, IsAlpha(""))
	assert.False(t, IsAlpha("CR4NE"))
}

func TestDictionary(t *testing.T) {
	d := NewDictionary(
		[]string{"crane", "CRANE", "toolong", "sl8te", "slate"},
		[]string{"trace", "abc"},
	)
	assert.Equal(t, []string{"CRANE", "SLATE"}, d.Answers())
	assert.True(t, d.Contains("crane"), "answers are accepted guesses")
	assert.True(t, d.Contains("TRACE"))
	assert.False(t, d.Contains("ABC"))

	a, g := d.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, g)
}

func TestLoadEmbedded(t *testing.T) {
	src, err := Load(Files{})
	require.NoError(t, err)
	a, g := src.Dictionary.Stats()
	assert.Equal(t, 100, a)
	assert.Greater(t, g, a)
	assert.Equal(t, []string{"animals", "countries", "foods", "movies", "sports"}, src.Categories.Names())
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	allowed := filepath.Join(dir, "allowed.txt")
	cats := filepath.Join(dir, "cats.txt")
	require.NoError(t, os.WriteFile(allowed, []byte("# comment\ncrane\nslate\n\n"), 0o644))
	require.NoError(t, os.WriteFile(cats, []byte("[Cities]\nnew york\nparis\n"), 0o644))

	src, err := Load(Files{Allowed: allowed, Categories: cats})
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE"}, src.Dictionary.Answers(), "allowed doubles as answers")

	list, ok := src.Categories.Words("CITIES")
	require.True(t, ok)
	assert.Equal(t, []string{"NEW YORK", "PARIS"}, list)
}

func TestLoadRejectsEmptyAnswers(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))
	_, err := Load(Files{Answers: empty, Allowed: empty})
	assert.Error(t, err)
}

func TestParseCategories(t *testing.T) {
	c, err := ParseCategories([]string{"[animals]", "tiger", "sea  lion", "[foods]", "pizza", "ice cream"})
	require.NoError(t, err)
	animals, _ := c.Words("animals")
	assert.Equal(t, []string{"TIGER"}, animals, "double spaces are rejected")
	assert.Equal(t, []string{"TIGER", "PIZZA", "ICE CREAM"}, c.All())

	_, err = ParseCategories([]string{"orphan", "[animals]", "tiger"})
	assert.Error(t, err)

	_, err = ParseCategories([]string{"[]"})
	assert.Error(t, err)
}
