// internal/httpserver/auth.go
//
// Player identity and accounts.
// Responsibilities:
//   - withIdentity: resolve the caller to a profile id. A valid account JWT
//     (bearer header or cookie) names an account; otherwise a signed guest
//     JWT in the anonymous cookie names an "anon-<uuid>" profile, issued on
//     first visit. Unsigned or foreign cookie values are never trusted.
//   - /auth/signup, /auth/login, /auth/logout, /auth/me.
//   - bcrypt password hashes, HS256 tokens.
//
// On signup the guest's stats, preferences and saved daily round move to the
// new account so nothing played before registering is lost.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/gamehub/internal/stats"
	"github.com/robalobadob/gamehub/internal/store"
)

const (
	anonCookieName = "gamehub_anon"
	guestPrefix    = "anon-"
	guestTTL       = 180 * 24 * time.Hour

	// Token audiences keep guest and account tokens from standing in for
	// each other.
	audAccount = "gamehub:account"
	audGuest   = "gamehub:guest"
)

// identity is placed into the request context by withIdentity.
type identity struct {
	PlayerID string `json:"id"`
	Username string `json:"username,omitempty"` // empty for guests
}

func (i identity) registered() bool { return i.Username != "" }

type ctxIdentityKey struct{}

func identityFrom(ctx context.Context) identity {
	id, _ := ctx.Value(ctxIdentityKey{}).(identity)
	return id
}

// tokenClaims is the JWT payload.
type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) mountAuth(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)
	r.With(s.withIdentity).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		me := identityFrom(r.Context())
		if !me.registered() {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, me)
	})
}

// withIdentity never rejects a request; guests get an anonymous id.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		me, ok := s.accountFromToken(r)
		if !ok {
			me = identity{PlayerID: s.ensureAnonID(w, r)}
		}
		ctx := context.WithValue(r.Context(), ctxIdentityKey{}, me)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) accountFromToken(r *http.Request) (identity, bool) {
	claims, ok := s.parseToken(s.bearerOrCookie(r), audAccount)
	if !ok {
		return identity{}, false
	}
	// Ensure the account still exists.
	a, err := s.store.FindAccountByID(r.Context(), claims.Subject)
	if err != nil {
		return identity{}, false
	}
	return identity{PlayerID: a.ID, Username: a.Username}, true
}

// guestID returns the profile id carried by a valid guest token cookie.
func (s *Server) guestID(r *http.Request) (string, bool) {
	c, err := r.Cookie(anonCookieName)
	if err != nil {
		return "", false
	}
	claims, ok := s.parseToken(c.Value, audGuest)
	if !ok {
		return "", false
	}
	rest, found := strings.CutPrefix(claims.Subject, guestPrefix)
	if !found {
		return "", false
	}
	if _, err := uuid.Parse(rest); err != nil {
		return "", false
	}
	return claims.Subject, true
}

// ensureAnonID returns the caller's guest id, issuing a fresh signed guest
// token when the cookie is missing or does not verify.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := s.guestID(r); ok {
		return id
	}
	id := guestPrefix + uuid.NewString()
	tok, err := s.signToken(id, "", audGuest, guestTTL)
	if err != nil {
		log.Error().Err(err).Msg("sign guest token")
		return id
	}
	http.SetCookie(w, s.cookie(anonCookieName, tok, guestTTL))
	return id
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	username := normalizeUsername(body.Username)
	if err := validateSignup(username, body.Password); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_signup", "message": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_failed")
		return
	}
	a := store.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.opts.Now().UTC(),
	}
	if err := s.store.CreateAccount(r.Context(), a); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username_taken")
			return
		}
		log.Error().Err(err).Msg("create account")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}
	if guest, ok := s.guestID(r); ok {
		s.claimGuest(r.Context(), guest, a.ID)
	}
	if !s.issueToken(w, a) {
		return
	}
	log.Info().Str("user", a.ID).Str("username", a.Username).Msg("account created")
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	a, err := s.store.FindAccountByName(r.Context(), normalizeUsername(body.Username))
	if err != nil || !checkPassword(a.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if !s.issueToken(w, *a) {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	c := s.cookie(s.opts.CookieName, "", 0)
	c.MaxAge = -1
	http.SetCookie(w, c)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) issueToken(w http.ResponseWriter, a store.Account) bool {
	tok, err := s.signToken(a.ID, a.Username, audAccount, s.opts.JWTExpires)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	http.SetCookie(w, s.cookie(s.opts.CookieName, tok, s.opts.JWTExpires))
	return true
}

// signToken creates an HS256 token for subject, valid for ttl.
func (s *Server) signToken(subject, username, audience string, ttl time.Duration) (string, error) {
	now := s.opts.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString([]byte(s.opts.JWTSecret))
}

// parseToken verifies tok for audience and returns its claims.
func (s *Server) parseToken(tok, audience string) (*tokenClaims, bool) {
	if tok == "" {
		return nil, false
	}
	var claims tokenClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil || !t.Valid || claims.Subject == "" {
		return nil, false
	}
	return &claims, true
}

// cookie builds an HttpOnly cookie with Max-Age set from ttl.
func (s *Server) cookie(name, value string, ttl time.Duration) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		MaxAge:   int(ttl / time.Second),
	}
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// claimGuest copies the guest's records to a fresh account. Failures are
// logged and otherwise ignored.
func (s *Server) claimGuest(ctx context.Context, guest, account string) {
	for _, g := range stats.Games {
		gs, err := s.store.GetStats(ctx, guest, g)
		if err != nil || gs == (stats.GameStats{}) {
			continue
		}
		if err := s.store.SetStats(ctx, account, g, gs); err != nil {
			log.Warn().Err(err).Str("game", string(g)).Msg("claim guest stats")
		}
	}
	if p, err := s.store.GetPreferences(ctx, guest); err == nil {
		if err := s.store.SetPreferences(ctx, account, p); err != nil {
			log.Warn().Err(err).Msg("claim guest preferences")
		}
	}
	if data, err := s.store.LoadSession(ctx, guest, stats.Wordle); err == nil && data != nil {
		if err := s.store.SaveSession(ctx, account, stats.Wordle, data); err != nil {
			log.Warn().Err(err).Msg("claim guest daily round")
		}
	}
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username must be 3-24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return errors.New("password must be 8-100 chars")
	}
	return nil
}
