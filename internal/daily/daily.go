// Package daily picks the puzzle of the day and keeps a player's daily
// Wordle round alive across reloads of the same calendar day.
package daily

import (
	"errors"
	"time"
)

const layout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(layout)
}

// DigitSum adds the numeric components of an ISO date: 2024-01-01 → 2026.
func DigitSum(t time.Time) int {
	y, m, d := t.UTC().Date()
	return y + int(m) + d
}

// Index returns the deterministic answer index for the date key.
// Two dates share an index only when their digit sums are congruent modulo n.
func Index(key string, n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("daily: empty answer list")
	}
	t, err := time.Parse(layout, key)
	if err != nil {
		return 0, err
	}
	return DigitSum(t) % n, nil
}

// Solution returns the answer for the date key.
func Solution(key string, answers []string) (string, error) {
	idx, err := Index(key, len(answers))
	if err != nil {
		return "", err
	}
	return answers[idx], nil
}
