// internal/httpserver/server.go
//
// HTTP wiring for the Nulldle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     per-IP rate limiting on mutating game routes).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): the session's four writable operations
//     plus a read-only state view.
//   - Stats endpoint: aggregate summary + fastest-times leaderboard.
//   - Auth endpoints: /auth/* (see auth.go).
//
// Each owner — an authenticated user or an anonymous cookie — has exactly one
// live game session. Sessions themselves are not thread-safe; the server's
// mutex serializes all access to them.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/raweeng/Nulldle/internal/dict"
	"github.com/raweeng/Nulldle/internal/game"
	"github.com/raweeng/Nulldle/internal/kv"
	"github.com/raweeng/Nulldle/internal/stats"
)

// Config carries the environment-derived settings the server needs.
type Config struct {
	JWTSecret     string
	JWTExpiryDays int
	ClientOrigin  string
	RateRPS       int
	RateBurst     int
	Production    bool
}

func (c *Config) fillDefaults() {
	if c.JWTSecret == "" {
		c.JWTSecret = "dev_secret_change_me"
	}
	if c.JWTExpiryDays <= 0 {
		c.JWTExpiryDays = 14
	}
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.RateRPS <= 0 {
		c.RateRPS = 5
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 10
	}
}

// Server bundles router, dictionary, stats store, and the per-owner sessions.
type Server struct {
	r     *chi.Mux
	dict  *dict.Dictionary
	stats *stats.Store
	users kv.Store
	cfg   Config

	mu       sync.Mutex
	sessions map[string]*game.Session

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(d *dict.Dictionary, st *stats.Store, users kv.Store, cfg Config) *Server {
	cfg.fillDefaults()
	s := &Server{
		r:        chi.NewRouter(),
		dict:     d,
		stats:    st,
		users:    users,
		cfg:      cfg,
		sessions: make(map[string]*game.Session),
		limiters: make(map[string]*rate.Limiter),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"nulldle","endpoints":["/health","POST /game/new","POST /game/input","POST /game/guess","GET /game/state","GET /stats/summary","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "words": s.dict.Len()})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play).
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.With(s.rateLimit).Post("/game/new", s.handleNewGame)
		r.With(s.rateLimit).Post("/game/input", s.handleInput)
		r.With(s.rateLimit).Post("/game/guess", s.handleGuess)
		r.Get("/game/state", s.handleState)
	})

	s.r.Get("/stats/summary", s.handleStatsSummary)

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

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
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a per-client token bucket to mutating game routes.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter(r.RemoteAddr).Allow() {
			http.Error(w, `{"error":"too_many_requests"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limiter(key string) *rate.Limiter {
	s.limMu.Lock()
	defer s.limMu.Unlock()
	if lim, ok := s.limiters[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(s.cfg.RateRPS), s.cfg.RateBurst)
	s.limiters[key] = lim
	return lim
}

// ------------------------------ GAME ---------------------------------------

// stateRes is the read-only view of a session exposed to clients.
type stateRes struct {
	State        string       `json:"state"` // "playing" | "won" | "lost"
	Guesses      []game.Guess `json:"guesses"`
	Input        string       `json:"input"`
	Over         bool         `json:"over"`
	Won          bool         `json:"won"`
	AttemptsLeft int          `json:"attemptsLeft"`
	Error        string       `json:"error,omitempty"`
	// Target is revealed only once the game is over.
	Target string `json:"target,omitempty"`
}

func snapshot(sess *game.Session) stateRes {
	res := stateRes{
		State:        sess.State(),
		Guesses:      sess.Guesses(),
		Input:        sess.Input(),
		Over:         sess.Over(),
		Won:          sess.Won(),
		AttemptsLeft: sess.AttemptsLeft(),
		Error:        sess.ErrorMessage(),
	}
	if res.Guesses == nil {
		res.Guesses = []game.Guess{}
	}
	if sess.Over() {
		res.Target = sess.Target()
	}
	return res
}

// withSession runs fn against the owner's session under the server lock and
// returns the resulting snapshot. The session is created on first use.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(sess *game.Session) error) (stateRes, error) {
	owner := s.ownerID(w, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[owner]
	if !ok {
		var err error
		sess, err = game.NewSession(s.dict, s.stats)
		if err != nil {
			return stateRes{}, err
		}
		s.sessions[owner] = sess
		log.Info().Str("owner", owner).Str("session", sess.ID).Msg("new game session")
	}
	if fn != nil {
		if err := fn(sess); err != nil {
			return snapshot(sess), err
		}
	}
	return snapshot(sess), nil
}

// newGameReq is the payload for POST /game/new.
// Word, when set, becomes the custom target for the next game.
type newGameReq struct {
	Word string `json:"word"`
}

// handleNewGame resets the owner's session, optionally with a custom target.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	res, err := s.withSession(w, r, func(sess *game.Session) error {
		if req.Word != "" {
			return sess.SetCustomWord(req.Word)
		}
		return sess.NewGame()
	})
	s.respondState(w, res, err)
}

// inputReq is the payload for POST /game/input.
type inputReq struct {
	Text string `json:"text"`
}

// handleInput replaces the current input buffer.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	res, err := s.withSession(w, r, func(sess *game.Session) error {
		sess.UpdateInput(req.Text)
		return nil
	})
	s.respondState(w, res, err)
}

// guessReq is the payload for POST /game/guess. Guess is optional; when set
// it replaces the input buffer before submission.
type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess submits the current input as a guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	res, err := s.withSession(w, r, func(sess *game.Session) error {
		if req.Guess != "" {
			sess.UpdateInput(req.Guess)
		}
		return sess.SubmitGuess(r.Context())
	})
	s.respondState(w, res, err)
}

// handleState returns the owner's current session state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	res, err := s.withSession(w, r, nil)
	s.respondState(w, res, err)
}

// respondState writes the session snapshot, with a 400 for the recoverable
// rejections (invalid word, bad length, game over) so clients can surface
// them as transient messages.
func (s *Server) respondState(w http.ResponseWriter, res stateRes, err error) {
	switch {
	case err == nil:
	case errors.Is(err, game.ErrInvalidWord),
		errors.Is(err, game.ErrBadLength),
		errors.Is(err, game.ErrGameOver):
		res.Error = err.Error()
		w.WriteHeader(http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("session operation")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------ STATS --------------------------------------

// statsRes is returned by GET /stats/summary.
type statsRes struct {
	stats.Summary
	TopDurationsSeconds []float64 `json:"topDurationsSeconds"`
}

// handleStatsSummary returns aggregate counters and the fastest-times
// leaderboard.
func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.stats.Summary(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats summary")
		http.Error(w, `{"error":"stats_unavailable"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(statsRes{
		Summary:             sum,
		TopDurationsSeconds: sum.TopDurationsSeconds(),
	})
}
