// internal/httpserver/routes_hangman.go
//
// Hangman endpoints:
//   - GET  /hangman/categories → category names
//   - POST /hangman/new        → start a round {category?, difficulty?}
//   - POST /hangman/guess      → guess one letter {id, letter}
//   - POST /hangman/hint       → reveal one letter {id}
//   - GET  /hangman/{id}       → current snapshot

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gamehub/internal/hangman"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
)

type hangmanView struct {
	ID           string           `json:"id"`
	Ignored      bool             `json:"ignored,omitempty"`
	Hint         string           `json:"hint,omitempty"`
	Game         hangman.Snapshot `json:"game"`
	Stats        *stats.GameStats `json:"stats,omitempty"`
	PersistError string           `json:"persistError,omitempty"`
}

type hangmanNewReq struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type hangmanGuessReq struct {
	ID     string `json:"id"`
	Letter string `json:"letter"`
}

func (s *Server) mountHangman(r chi.Router) {
	r.Route("/hangman", func(r chi.Router) {
		r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"categories": s.words.Categories.Names()})
		})
		r.Post("/new", s.handleHangmanNew)
		r.Post("/guess", s.handleHangmanGuess)
		r.Post("/hint", s.handleHangmanHint)
		r.Get("/{id}", s.handleHangmanGet)
	})
}

func (s *Server) handleHangmanNew(w http.ResponseWriter, r *http.Request) {
	var req hangmanNewReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	d, err := hangman.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_difficulty")
		return
	}
	me := identityFrom(r.Context())
	e := hangman.New(s.words.Categories, s.newRand(), store.Bind(s.store, me.PlayerID))
	if err := e.Start(req.Category, d); err != nil {
		writeError(w, http.StatusBadRequest, "unknown_category")
		return
	}
	id := s.hangman.add(me.PlayerID, e)
	writeJSON(w, http.StatusOK, hangmanView{ID: id, Game: e.Snapshot()})
}

// hangmanStep runs one command against a live round and writes the response.
func (s *Server) hangmanStep(w http.ResponseWriter, r *http.Request, id string, step func(*hangman.Engine, *hangmanView) error) {
	me := identityFrom(r.Context())
	var view hangmanView
	err := s.hangman.with(id, me.PlayerID, func(e *hangman.Engine) error {
		before := e.Session().Status
		view.ID = id
		note, err := persistNote(step(e, &view), me.PlayerID)
		if err != nil {
			return err
		}
		view.PersistError = note
		view.Game = e.Snapshot()

		if after := e.Session().Status; after != before && (after == hangman.Won || after == hangman.Lost) {
			log.Info().Str("player", me.PlayerID).Str("status", string(after)).Msg("hangman round finished")
			if note == "" {
				if gs, err := s.store.GetStats(r.Context(), me.PlayerID, stats.Hangman); err == nil {
					view.Stats = &gs
				}
			}
		}
		return nil
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, view)
	case errors.Is(err, errSessionNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		log.Error().Err(err).Msg("hangman command")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

func (s *Server) handleHangmanGuess(w http.ResponseWriter, r *http.Request) {
	var req hangmanGuessReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.hangmanStep(w, r, req.ID, func(e *hangman.Engine, v *hangmanView) error {
		applied, err := e.Guess(r.Context(), req.Letter)
		v.Ignored = !applied
		return err
	})
}

func (s *Server) handleHangmanHint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.hangmanStep(w, r, req.ID, func(e *hangman.Engine, v *hangmanView) error {
		letter, err := e.Hint(r.Context())
		v.Hint = letter
		v.Ignored = letter == ""
		return err
	})
}

func (s *Server) handleHangmanGet(w http.ResponseWriter, r *http.Request) {
	s.hangmanStep(w, r, chi.URLParam(r, "id"), func(*hangman.Engine, *hangmanView) error { return nil })
}
