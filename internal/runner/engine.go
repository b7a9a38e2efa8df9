// internal/runner/engine.go
//
// Fixed-step side-scroller simulation.
//
// Each Advance is one frame:
//   1. physics: gravity while airborne, clamp on landing
//   2. obstacles move left by speed; those at x <= -width are dropped
//   3. spawn when the list is empty or the trailing obstacle has passed a
//      randomised threshold
//   4. AABB collision → gameOver, stats written once
//   5. score +1; every SpeedEvery points speed += SpeedStep
//
// There is no delta-time scaling: a host that drops ticks slows the game.

package runner

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/robalobadob/gamehub/internal/cue"
	"github.com/robalobadob/gamehub/internal/stats"
)

// Engine owns the runner State. It is not safe for concurrent use; see Loop.
type Engine struct {
	cfg  Config
	rng  *rand.Rand
	rec  stats.Recorder
	cues cue.Sink

	status    Status
	st        State
	frame     uint64
	highScore int
}

// New returns an idle engine. rec may be nil; cues may be nil.
func New(cfg Config, rng *rand.Rand, rec stats.Recorder, cues cue.Sink) *Engine {
	if cues == nil {
		cues = cue.Discard
	}
	e := &Engine{cfg: cfg, rng: rng, rec: rec, cues: cues, status: Idle}
	e.st = e.fresh()
	return e
}

func (e *Engine) fresh() State {
	return State{
		Actor: Actor{
			X:      e.cfg.ActorX,
			Y:      e.cfg.ActorY,
			Width:  e.cfg.ActorWidth,
			Height: e.cfg.ActorHeight,
		},
		Obstacles: []Obstacle{},
		Speed:     e.cfg.InitialSpeed,
		GroundY:   e.cfg.GroundY,
	}
}

// Status reports the session status.
func (e *Engine) Status() Status { return e.status }

// Start begins a new run from idle or after a game over. The stored high
// score is read for display; a failed read is returned but the run starts.
func (e *Engine) Start(ctx context.Context) (bool, error) {
	if e.status == Playing || e.status == Paused {
		return false, nil
	}
	e.st = e.fresh()
	e.frame = 0
	e.status = Playing
	if e.rec == nil {
		return true, nil
	}
	s, err := e.rec.GetStats(ctx, stats.Runner)
	if err != nil {
		return true, err
	}
	e.highScore = s.HighScore
	return true, nil
}

// Jump starts a jump. Ignored while airborne or not playing.
func (e *Engine) Jump() bool {
	if e.status != Playing || e.st.Actor.IsJumping {
		return false
	}
	e.st.Actor.VelocityY = e.cfg.JumpImpulse
	e.st.Actor.IsJumping = true
	e.cues.Play(cue.Jump)
	return true
}

// Pause freezes the simulation without touching its state.
func (e *Engine) Pause() bool {
	if e.status != Playing {
		return false
	}
	e.status = Paused
	return true
}

// Resume continues a paused run.
func (e *Engine) Resume() bool {
	if e.status != Paused {
		return false
	}
	e.status = Playing
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause() bool {
	if e.status == Paused {
		return e.Resume()
	}
	return e.Pause()
}

// Reset discards the run and returns to idle.
func (e *Engine) Reset() {
	e.st = e.fresh()
	e.frame = 0
	e.status = Idle
}

// Advance runs one frame. It reports whether the simulation moved; the error
// is only a *stats.PersistenceWriteError from the game-over write.
func (e *Engine) Advance(ctx context.Context) (bool, error) {
	if e.status != Playing {
		return false, nil
	}
	e.frame++
	st := &e.st

	a := &st.Actor
	if a.IsJumping {
		a.VelocityY += e.cfg.Gravity
		a.Y += a.VelocityY
		if a.Y >= e.cfg.ActorY {
			a.Y = e.cfg.ActorY
			a.VelocityY = 0
			a.IsJumping = false
		}
	}

	kept := st.Obstacles[:0]
	for _, o := range st.Obstacles {
		o.X -= st.Speed
		if o.X > -o.Width {
			kept = append(kept, o)
		}
	}
	st.Obstacles = kept

	if n := len(st.Obstacles); n == 0 ||
		st.Obstacles[n-1].X < e.cfg.CanvasWidth-e.cfg.SpawnGap-e.rng.Float64()*e.cfg.SpawnJitter {
		st.Obstacles = append(st.Obstacles, e.spawn())
	}

	for _, o := range st.Obstacles {
		if overlaps(*a, o) {
			return true, e.over(ctx)
		}
	}

	st.Score++
	if e.cfg.SpeedEvery > 0 && st.Score%e.cfg.SpeedEvery == 0 {
		st.Speed += e.cfg.SpeedStep
		e.cues.Play(cue.Score)
	}
	return true, nil
}

func (e *Engine) spawn() Obstacle {
	k := Kinds[e.rng.IntN(len(Kinds))]
	p := profiles[k]
	return Obstacle{
		X:      e.cfg.CanvasWidth + e.cfg.SpawnOffset,
		Y:      p.y,
		Width:  p.width,
		Height: p.height,
		Kind:   k,
	}
}

func (e *Engine) over(ctx context.Context) error {
	e.status = GameOver
	e.cues.Play(cue.GameOver)
	score := e.st.Score
	if score > e.highScore {
		e.highScore = score
	}
	if e.rec == nil {
		return nil
	}
	s, err := stats.Update(ctx, e.rec, stats.Runner, func(s stats.GameStats) stats.GameStats {
		return s.RunOver(score)
	})
	if err == nil && s.HighScore > e.highScore {
		e.highScore = s.HighScore
	}
	return err
}

// overlaps is a strict AABB test; touching edges do not collide.
func overlaps(a Actor, o Obstacle) bool {
	return a.X < o.X+o.Width &&
		a.X+a.Width > o.X &&
		a.Y < o.Y+o.Height &&
		a.Y+a.Height > o.Y
}

// Snapshot returns a copy of the current frame for rendering.
func (e *Engine) Snapshot() Snapshot {
	st := e.st
	st.Obstacles = slices.Clone(e.st.Obstacles)
	return Snapshot{
		State:        st,
		Status:       e.status,
		Frame:        e.frame,
		DisplayScore: e.st.Score / 10,
		HighScore:    e.highScore,
		Width:        e.cfg.CanvasWidth,
		Height:       e.cfg.CanvasHeight,
	}
}
