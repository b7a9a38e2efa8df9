// internal/httpserver/routes_wordle.go
//
// Wordle endpoints:
//   - POST /wordle/daily  → resume or start today's puzzle for the caller;
//                           repeated calls share one live round
//   - POST /wordle/new    → start a free-play round with a random answer
//   - POST /wordle/guess  → submit a guess {id, guess}
//   - GET  /wordle/{id}   → current snapshot
//
// Daily rounds are saved after every accepted guess so a reload on the same
// day resumes them; free-play rounds live only in the registry.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gamehub/internal/daily"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/wordle"
)

type wordleView struct {
	ID           string                    `json:"id"`
	Ignored      bool                      `json:"ignored,omitempty"`
	Row          *[wordle.Cols]wordle.Tile `json:"row,omitempty"`
	Game         wordle.Snapshot           `json:"game"`
	Stats        *stats.GameStats          `json:"stats,omitempty"`
	Share        string                    `json:"share,omitempty"`
	PersistError string                    `json:"persistError,omitempty"`
}

type wordleGuessReq struct {
	ID    string `json:"id"`
	Guess string `json:"guess"`
}

func (s *Server) mountWordle(r chi.Router) {
	r.Route("/wordle", func(r chi.Router) {
		r.Post("/daily", s.handleWordleDaily)
		r.Post("/new", s.handleWordleNew)
		r.Post("/guess", s.handleWordleGuess)
		r.Get("/{id}", s.handleWordleGet)
	})
}

func wordleViewOf(id string, e *wordle.Engine) wordleView {
	v := wordleView{ID: id, Game: e.Snapshot()}
	if share, ok := e.Share(); ok {
		v.Share = share
	}
	return v
}

func (s *Server) handleWordleDaily(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r.Context())
	now := s.opts.Now()
	var view wordleView
	err := s.wordle.ensure(me.PlayerID, daily.DateKey(now), func() (*wordle.Engine, error) {
		return s.keeper.Resume(r.Context(), me.PlayerID, now, store.Bind(s.store, me.PlayerID))
	}, func(id string, e *wordle.Engine) error {
		view = wordleViewOf(id, e)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("player", me.PlayerID).Msg("resume daily")
		writeError(w, http.StatusInternalServerError, "daily_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWordleNew(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r.Context())
	dict := s.words.Dictionary
	e, err := wordle.NewRandom(s.newRand(), dict.Answers(), dict, store.Bind(s.store, me.PlayerID))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_answers")
		return
	}
	id := s.wordle.add(me.PlayerID, e)
	writeJSON(w, http.StatusOK, wordleViewOf(id, e))
}

func (s *Server) handleWordleGuess(w http.ResponseWriter, r *http.Request) {
	var req wordleGuessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	me := identityFrom(r.Context())

	var view wordleView
	err := s.wordle.with(req.ID, me.PlayerID, func(e *wordle.Engine) error {
		res, err := e.Submit(r.Context(), req.Guess)
		note, err := persistNote(err, me.PlayerID)
		if err != nil {
			return err
		}
		view = wordleViewOf(req.ID, e)
		view.PersistError = note
		view.Stats = res.Stats
		if !res.Applied {
			view.Ignored = true
			return nil
		}
		row := res.Row
		view.Row = &row

		// A round left open past midnight must not replace the new day's save.
		if date := e.Session().Date; date != "" && date == daily.DateKey(s.opts.Now()) {
			if err := s.keeper.Save(r.Context(), me.PlayerID, e); err != nil {
				log.Warn().Err(err).Str("player", me.PlayerID).Msg("save daily round")
				view.PersistError = err.Error()
			}
		}
		if res.Status != wordle.Playing {
			log.Info().Str("player", me.PlayerID).Str("status", string(res.Status)).
				Str("date", e.Session().Date).Msg("wordle round finished")
		}
		return nil
	})

	var (
		lenErr  *wordle.InvalidLengthError
		dictErr *wordle.NotInDictionaryError
	)
	switch {
	case err == nil:
	case errors.Is(err, errSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.As(err, &lenErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid_length", "length": lenErr.Length})
		return
	case errors.As(err, &dictErr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "not_in_dictionary", "word": dictErr.Word})
		return
	default:
		log.Error().Err(err).Msg("wordle guess")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWordleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	me := identityFrom(r.Context())
	var view wordleView
	err := s.wordle.with(id, me.PlayerID, func(e *wordle.Engine) error {
		view = wordleViewOf(id, e)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, view)
}
