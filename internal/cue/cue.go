// Package cue carries "a sound should play now" events from engines to
// whatever host can make noise. Synthesis is the host's business.
package cue

import "sync"

// Cue identifies a sound event.
type Cue string

const (
	Jump     Cue = "jump"
	Score    Cue = "score"
	GameOver Cue = "gameOver"
)

// Sink receives cues as they happen.
type Sink interface {
	Play(c Cue)
}

// Discard drops every cue.
var Discard Sink = discard{}

type discard struct{}

func (discard) Play(Cue) {}

// Gate forwards cues to next only while enabled reports true.
func Gate(enabled func() bool, next Sink) Sink {
	return SinkFunc(func(c Cue) {
		if enabled() {
			next.Play(c)
		}
	})
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Cue)

func (f SinkFunc) Play(c Cue) { f(c) }

// Buffer collects cues until drained. Safe for use from a frame loop and a
// reader goroutine at the same time.
type Buffer struct {
	mu   sync.Mutex
	cues []Cue
}

func (b *Buffer) Play(c Cue) {
	b.mu.Lock()
	b.cues = append(b.cues, c)
	b.mu.Unlock()
}

// Drain returns the buffered cues and empties the buffer.
func (b *Buffer) Drain() []Cue {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.cues
	b.cues = nil
	return out
}
