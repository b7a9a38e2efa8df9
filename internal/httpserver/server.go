// internal/httpserver/server.go
//
// HTTP server wiring for the GameHub backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Player identity on every game route (account JWT or anonymous cookie).
//   - Game endpoints: /wordle/*, /hangman/*, /runner/*.
//   - Stats, preferences and auth endpoints.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The runner websocket sits outside the request timeout; everything else
//     is bounded to 10s.
//   - A failed stats/session write never rolls back game state: the response
//     carries the new state plus a "persistError" message.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gamehub/internal/daily"
	"github.com/robalobadob/gamehub/internal/hangman"
	"github.com/robalobadob/gamehub/internal/runner"
	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
	"github.com/robalobadob/gamehub/internal/wordle"
	"github.com/robalobadob/gamehub/internal/words"
)

// Options carries the knobs the server reads from config.
type Options struct {
	ClientOrigin  string
	JWTSecret     string
	JWTExpires    time.Duration
	CookieName    string
	SecureCookies bool
	RunnerTick    time.Duration
	PongWait      time.Duration // runner websocket; pings go out at 9/10 of it
	SessionTTL    time.Duration
	Seed          uint64           // 0 picks a random seed
	Now           func() time.Time // defaults to time.Now
}

func (o *Options) defaults() {
	if o.ClientOrigin == "" {
		o.ClientOrigin = "http://localhost:5173"
	}
	if o.JWTSecret == "" {
		o.JWTSecret = "dev-secret-change-me"
	}
	if o.JWTExpires <= 0 {
		o.JWTExpires = 7 * 24 * time.Hour
	}
	if o.CookieName == "" {
		o.CookieName = "gamehub_token"
	}
	if o.RunnerTick <= 0 {
		o.RunnerTick = runner.DefaultTick
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 2 * time.Hour
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Server bundles the router, the persistence store and live game sessions.
type Server struct {
	r      *chi.Mux
	store  store.Store
	words  *words.Source
	opts   Options
	keeper *daily.Keeper

	wordle  *registry[*wordle.Engine]
	hangman *registry[*hangman.Engine]

	rngMu sync.Mutex
	rng   *rand.Rand

	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, src *words.Source, opts Options) *Server {
	opts.defaults()
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		words:   src,
		opts:    opts,
		keeper:  daily.NewKeeper(st, src.Dictionary),
		wordle:  newRegistry[*wordle.Engine](opts.SessionTTL, opts.Now),
		hangman: newRegistry[*hangman.Engine](opts.SessionTTL, opts.Now),
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Runner websocket: long-lived, no request timeout.
	s.r.With(s.withIdentity).Get("/runner/ws", s.handleRunnerWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service": "gamehub",
				"games":   stats.Games,
				"endpoints": []string{
					"/health", "/auth/*", "/stats", "/preferences",
					"/wordle/*", "/hangman/*", "/runner/ws", "/runner/leaderboard",
				},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := s.words.Dictionary.Stats()
			writeJSON(w, http.StatusOK, map[string]int{
				"answers":    a,
				"allowed":    g,
				"categories": len(s.words.Categories.Names()),
			})
		})

		s.mountAuth(r)

		r.Group(func(r chi.Router) {
			r.Use(s.withIdentity)
			s.mountStats(r)
			s.mountWordle(r)
			s.mountHangman(r)
			r.Get("/runner/leaderboard", s.handleLeaderboard)
		})

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
		})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// newRand derives an independent generator for one game session.
func (s *Server) newRand() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.opts.ClientOrigin
}

// ------------------------------ responses ----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}

// persistNote turns a *stats.PersistenceWriteError into the message returned
// as "persistError". Any other error is handed back unchanged.
func persistNote(err error, player string) (string, error) {
	if err == nil {
		return "", nil
	}
	var pe *stats.PersistenceWriteError
	if errors.As(err, &pe) {
		log.Warn().Err(pe.Err).Str("player", player).Str("game", string(pe.Game)).Msg("stats write failed")
		return pe.Error(), nil
	}
	return "", err
}
