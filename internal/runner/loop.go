package runner

import (
	"context"
	"time"
)

// Command is a discrete input event for the runner.
type Command string

const (
	CmdStart  Command = "start"
	CmdJump   Command = "jump"
	CmdPause  Command = "pause"
	CmdResume Command = "resume"
	CmdToggle Command = "toggle"
	CmdReset  Command = "reset"
)

// Apply dispatches a command to the engine and reports whether it changed
// anything. Unknown commands are ignored.
func (e *Engine) Apply(ctx context.Context, c Command) (bool, error) {
	switch c {
	case CmdStart:
		return e.Start(ctx)
	case CmdJump:
		return e.Jump(), nil
	case CmdPause:
		return e.Pause(), nil
	case CmdResume:
		return e.Resume(), nil
	case CmdToggle:
		return e.TogglePause(), nil
	case CmdReset:
		e.Reset()
		return true, nil
	}
	return false, nil
}

// FrameFunc receives a snapshot after every tick or command that changed
// the engine, plus any error the engine reported for it.
type FrameFunc func(Snapshot, error)

// DefaultTick is roughly one 60 Hz display frame.
const DefaultTick = 16 * time.Millisecond

// Loop drives an Engine from a ticker. All engine access happens on the Run
// goroutine, so commands from other goroutines are serialised through Send.
type Loop struct {
	eng      *Engine
	interval time.Duration
	cmds     chan Command
	onFrame  FrameFunc

	beatEvery time.Duration
	beat      func() error
}

func NewLoop(e *Engine, interval time.Duration, onFrame FrameFunc) *Loop {
	if interval <= 0 {
		interval = DefaultTick
	}
	return &Loop{eng: e, interval: interval, cmds: make(chan Command, 16), onFrame: onFrame}
}

// Send queues a command. It drops the command if the queue is full or ctx
// is done, which only happens when the loop has stalled or stopped.
func (l *Loop) Send(ctx context.Context, c Command) bool {
	select {
	case l.cmds <- c:
		return true
	case <-ctx.Done():
		return false
	default:
		return false
	}
}

// SetHeartbeat makes Run call fn every interval, on the Run goroutine, even
// while the engine is idle. Run stops with fn's error if it fails. Call it
// before Run.
func (l *Loop) SetHeartbeat(every time.Duration, fn func() error) {
	l.beatEvery, l.beat = every, fn
}

// Run ticks until ctx is cancelled or the heartbeat fails.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var beats <-chan time.Time
	if l.beat != nil && l.beatEvery > 0 {
		hb := time.NewTicker(l.beatEvery)
		defer hb.Stop()
		beats = hb.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-l.cmds:
			changed, err := l.eng.Apply(ctx, c)
			if changed || err != nil {
				l.emit(err)
			}
		case <-ticker.C:
			moved, err := l.eng.Advance(ctx)
			if moved || err != nil {
				l.emit(err)
			}
		case <-beats:
			if err := l.beat(); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) emit(err error) {
	if l.onFrame != nil {
		l.onFrame(l.eng.Snapshot(), err)
	}
}
