package cue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate(t *testing.T) {
	buf := &Buffer{}
	on := true
	s := Gate(func() bool { return on }, buf)

	s.Play(Jump)
	on = false
	s.Play(Score)
	on = true
	s.Play(GameOver)

	assert.Equal(t, []Cue{Jump, GameOver}, buf.Drain())
	assert.Empty(t, buf.Drain())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard.Play(Jump) })
}
