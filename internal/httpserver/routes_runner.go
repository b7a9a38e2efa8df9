// internal/httpserver/routes_runner.go
//
// Dino Runner over a websocket.
//   - GET /runner/ws          → one runner session per connection
//   - GET /runner/leaderboard → top high scores across profiles
//
// Protocol:
//   client → server  {"type":"start|jump|pause|resume|toggle|reset"}
//   server → client  {"type":"frame","state":{...},"cues":[...],"persistError":"..."}
//
// The runner loop goroutine is the only writer on the connection, frames and
// pings alike; the handler goroutine only reads commands and forwards them
// through Loop.Send. When the loop stops it closes the connection so the
// reader unblocks.

package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gamehub/internal/cue"
	"github.com/robalobadob/gamehub/internal/runner"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
)

const (
	wsWriteWait  = 2 * time.Second
	wsMaxMessage = 512
)

// wsConn is the part of *websocket.Conn a runner session uses.
type wsConn interface {
	SetReadLimit(int64)
	SetReadDeadline(time.Time) error
	SetWriteDeadline(time.Time) error
	SetPongHandler(func(string) error)
	ReadJSON(any) error
	WriteJSON(any) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

type runnerCommand struct {
	Type string `json:"type"`
}

type runnerFrame struct {
	Type         string          `json:"type"`
	State        runner.Snapshot `json:"state"`
	Cues         []cue.Cue       `json:"cues,omitempty"`
	PersistError string          `json:"persistError,omitempty"`
}

func (s *Server) handleRunnerWS(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("runner ws upgrade")
		return
	}
	defer conn.Close()
	s.serveRunner(r.Context(), conn, me)
}

// serveRunner runs one runner session on conn until the peer goes away or a
// write fails.
func (s *Server) serveRunner(ctx context.Context, conn wsConn, me identity) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pongWait := s.opts.PongWait

	profile := store.Bind(s.store, me.PlayerID)
	var sound atomic.Bool
	refreshSound := func() {
		p, err := profile.GetPreferences(ctx)
		if err != nil {
			log.Warn().Err(err).Str("player", me.PlayerID).Msg("load preferences")
			p = stats.DefaultPreferences()
		}
		sound.Store(p.SoundEnabled)
	}
	refreshSound()

	cues := &cue.Buffer{}
	eng := runner.New(runner.DefaultConfig(), s.newRand(), profile, cue.Gate(sound.Load, cues))

	lastStatus := eng.Status()
	loop := runner.NewLoop(eng, s.opts.RunnerTick, func(snap runner.Snapshot, err error) {
		frame := runnerFrame{Type: "frame", State: snap, Cues: cues.Drain()}
		note, err := persistNote(err, me.PlayerID)
		if err != nil {
			log.Warn().Err(err).Str("player", me.PlayerID).Msg("runner stats read failed")
			note = err.Error()
		}
		frame.PersistError = note
		if snap.Status == runner.GameOver && lastStatus != runner.GameOver {
			log.Info().Str("player", me.PlayerID).Int("score", snap.Score).Msg("runner game over")
		}
		lastStatus = snap.Status

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(frame); err != nil {
			cancel()
		}
	})

	loop.SetHeartbeat(pongWait*9/10, func() error {
		return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
	})

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Debug().Err(err).Str("player", me.PlayerID).Msg("runner ping failed")
		}
		_ = conn.Close()
	}()

	for {
		var cmd runnerCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("player", me.PlayerID).Msg("runner ws closed")
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		c := runner.Command(cmd.Type)
		if c == runner.CmdStart {
			refreshSound()
		}
		if !loop.Send(ctx, c) {
			log.Warn().Str("player", me.PlayerID).Str("cmd", cmd.Type).Msg("runner command dropped")
		}
	}
	cancel()
	<-done
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.store.TopScores(r.Context(), stats.Runner, limit)
	if err != nil {
		log.Error().Err(err).Msg("runner leaderboard")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game": stats.Runner, "entries": rows})
}
