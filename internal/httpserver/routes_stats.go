// internal/httpserver/routes_stats.go
//
// Per-profile stats and preferences:
//   - GET /stats          → every game's record
//   - GET /stats/{game}   → one record (wordle | hangman | dino)
//   - GET /preferences
//   - PUT /preferences

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
)

type statsView struct {
	stats.GameStats
	WinRate int `json:"winRate"`
}

func viewOf(s stats.GameStats) statsView {
	return statsView{GameStats: s, WinRate: s.WinRate()}
}

func (s *Server) mountStats(r chi.Router) {
	r.Get("/stats", s.handleAllStats)
	r.Get("/stats/{game}", s.handleGameStats)
	r.Get("/preferences", s.handleGetPreferences)
	r.Put("/preferences", s.handlePutPreferences)
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r.Context())
	all, err := store.AllStats(r.Context(), s.store, me.PlayerID)
	if err != nil {
		log.Error().Err(err).Str("player", me.PlayerID).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	games := make(map[stats.GameID]statsView, len(all))
	for g, gs := range all {
		games[g] = viewOf(gs)
	}
	writeJSON(w, http.StatusOK, map[string]any{"player": me, "games": games})
}

func (s *Server) handleGameStats(w http.ResponseWriter, r *http.Request) {
	game := stats.GameID(chi.URLParam(r, "game"))
	if !game.Valid() {
		writeError(w, http.StatusNotFound, "unknown_game")
		return
	}
	me := identityFrom(r.Context())
	gs, err := s.store.GetStats(r.Context(), me.PlayerID, game)
	if err != nil {
		log.Error().Err(err).Str("player", me.PlayerID).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(gs))
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r.Context())
	p, err := s.store.GetPreferences(r.Context(), me.PlayerID)
	if err != nil {
		log.Error().Err(err).Str("player", me.PlayerID).Msg("load preferences")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	me := identityFrom(r.Context())
	p, err := s.store.GetPreferences(r.Context(), me.PlayerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	// Decoding over the current values makes omitted fields keep them.
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := p.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_preferences", "message": err.Error()})
		return
	}
	if err := s.store.SetPreferences(r.Context(), me.PlayerID, p); err != nil {
		log.Error().Err(err).Str("player", me.PlayerID).Msg("save preferences")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
