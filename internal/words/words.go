// internal/words/words.go
//
// Word source for the engines.
//
// Responsibilities:
//   - Load the Wordle answer/accepted lists and the Hangman category lists from
//     configured files or fall back to the embedded defaults in package assets.
//   - Normalise every entry to uppercase (collation used for all lookups).
//   - Expose immutable Dictionary and Categories values handed to engines at
//     construction time.
//
// Loading behaviour (Load):
//   1. If Answers and Allowed are both set, read answers from the first and
//      accepted guesses from the second.
//   2. If only Allowed is set, use that file for both.
//   3. Otherwise use the embedded answers.txt / allowed.txt.
//   Categories come from Files.Categories when set, else categories.txt.

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/robalobadob/gamehub/assets"
)

// WordLength is the length of every Wordle answer and guess.
const WordLength = 5

// Files names optional on-disk replacements for the embedded lists.
type Files struct {
	Answers    string
	Allowed    string
	Categories string
}

// Source bundles everything the engines read.
type Source struct {
	Dictionary *Dictionary
	Categories *Categories
}

// Load builds a Source from files, falling back to embedded defaults.
func Load(f Files) (*Source, error) {
	var ansList, allowList []string
	var err error

	switch {
	case f.Answers != "" && f.Allowed != "":
		if ansList, err = readWordFile(f.Answers); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(f.Allowed); err != nil {
			return nil, err
		}
	case f.Answers == "" && f.Allowed != "":
		if allowList, err = readWordFile(f.Allowed); err != nil {
			return nil, err
		}
		ansList = allowList
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	dict := NewDictionary(ansList, allowList)
	if len(dict.Answers()) == 0 {
		return nil, errors.New("words: answers list is empty")
	}

	var catLines []string
	if f.Categories != "" {
		catLines, err = readLinesFile(f.Categories)
	} else {
		catLines, err = assets.CategoryLines()
	}
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	cats, err := ParseCategories(catLines)
	if err != nil {
		return nil, err
	}
	return &Source{Dictionary: dict, Categories: cats}, nil
}

func readLinesFile(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return assets.ReadLines(fh)
}

// readWordFile loads one word per line; invalid entries are dropped by
// NewDictionary.
func readWordFile(path string) ([]string, error) {
	lines, err := readLinesFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// Normalize trims s and maps it to uppercase.
// A Caser is stateful, so one is built per call.
func Normalize(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// IsAlpha reports whether s is all uppercase ASCII letters.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}

// Dictionary holds Wordle answers and the accepted-guess set (answers ⊆ accepted).
type Dictionary struct {
	answers []string
	allowed map[string]struct{}
}

// NewDictionary normalises both lists and keeps only 5-letter A–Z words.
func NewDictionary(answers, allowed []string) *Dictionary {
	d := &Dictionary{allowed: make(map[string]struct{}, len(answers)+len(allowed))}
	seen := make(map[string]struct{}, len(answers))
	for _, w := range answers {
		w = Normalize(w)
		if !validWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		d.answers = append(d.answers, w)
		d.allowed[w] = struct{}{}
	}
	for _, w := range allowed {
		if w = Normalize(w); validWord(w) {
			d.allowed[w] = struct{}{}
		}
	}
	return d
}

func validWord(w string) bool {
	return len(w) == WordLength && IsAlpha(w)
}

// Answers returns the ordered answer list. Callers must not modify it.
func (d *Dictionary) Answers() []string { return d.answers }

// Contains reports whether w is an accepted guess, ignoring case.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.allowed[Normalize(w)]
	return ok
}

// Stats returns counts of loaded words: (answers, accepted).
func (d *Dictionary) Stats() (answersCount int, allowedCount int) {
	return len(d.answers), len(d.allowed)
}
