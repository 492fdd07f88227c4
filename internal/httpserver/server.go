// internal/httpserver/server.go
//
// HTTP server wiring for the impostor lobby backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", GET /api/health, GET /api/lobby/state,
//     GET /api/lobby/role, GET /api/stats.
//   - Admin-gated endpoints: POST /api/lobby/create, POST /api/lobby/start
//     (shared administrator secret, verified here, never in the core).
//   - Open endpoint: POST /api/lobby/join.
//   - Mapping lobby error kinds to HTTP status codes.
//   - Best-effort history recording for created lobbies and started games.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Responses use a uniform envelope: {ok:true,...} / {ok:false,error}.
//   - Lobby summaries never carry the secret word or the impostor id;
//     the core guarantees that, this layer just serializes.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/impostorparty/go-server/internal/history"
	"github.com/impostorparty/go-server/internal/lobby"
)

// Server bundles router, lobby service, authorizer, and optional history.
type Server struct {
	r    *chi.Mux
	svc  *lobby.Service
	auth *AdminAuth
	hist *history.Store // nil disables recording
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *lobby.Service, auth *AdminAuth, hist *history.Store) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, auth: auth, hist: hist}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"impostor-go","endpoints":["/api/health","/api/lobby/state","/api/lobby/role","POST /api/lobby/create","POST /api/lobby/join","POST /api/lobby/start","/api/stats"]}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/stats", s.handleStats)
		r.Get("/lobby/state", s.handleState)
		r.Get("/lobby/role", s.handleRole)
		r.Post("/lobby/create", s.handleCreate)
		r.Post("/lobby/join", s.handleJoin)
		r.Post("/lobby/start", s.handleStart)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
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

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
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

// ------------------------------ envelope -----------------------------------

type errRes struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// writeJSON encodes payload with a 200 status.
func writeJSON(w http.ResponseWriter, payload any) {
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError encodes the failure envelope with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errRes{OK: false, Error: msg})
}

// writeLobbyError maps a lobby error kind to its HTTP status.
func writeLobbyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lobby.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid admin password")
	case errors.Is(err, lobby.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, lobby.ErrValidation), errors.Is(err, lobby.ErrConflict):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("lobby operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ----------------------------- diagnostics ---------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"ok": true})
}

// handleStats reports history counters; 404 when history is disabled.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}
	st, err := s.hist.Counts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("history counts")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, map[string]any{"ok": true, "lobbies": st.Lobbies, "games": st.Games})
}

// ------------------------------- queries -----------------------------------

type stateRes struct {
	OK    bool          `json:"ok"`
	Lobby lobby.Summary `json:"lobby"`
}

// handleState returns the public snapshot of a lobby.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Summary(r.URL.Query().Get("code"))
	if err != nil {
		writeLobbyError(w, err)
		return
	}
	writeJSON(w, stateRes{OK: true, Lobby: sum})
}

type roleRes struct {
	OK         bool    `json:"ok"`
	IsImpostor bool    `json:"isImpostor"`
	Word       *string `json:"word"` // null for the impostor
}

// handleRole returns a player's role once the game has started.
// The impostor gets word:null as a gameplay mechanic, not an omission.
// A missing or malformed playerId becomes 0, which matches no player, so
// the core still settles precedence: unknown lobby before not-started
// before unknown player.
func (s *Server) handleRole(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(r.URL.Query().Get("playerId"))
	if err != nil {
		playerID = 0
	}
	info, err := s.svc.Role(r.URL.Query().Get("code"), playerID)
	if err != nil {
		writeLobbyError(w, err)
		return
	}
	res := roleRes{OK: true, IsImpostor: info.IsImpostor}
	if !info.IsImpostor {
		res.Word = &info.Word
	}
	writeJSON(w, res)
}

// ------------------------------ mutations ----------------------------------

type createReq struct {
	AdminPassword string `json:"adminPassword"`
	AdminName     string `json:"adminName"`
	MaxPlayers    int    `json:"maxPlayers"`
	Difficulty    string `json:"difficulty"`
}
type createRes struct {
	OK       bool          `json:"ok"`
	Code     string        `json:"code"`
	PlayerID int           `json:"playerId"`
	Lobby    lobby.Summary `json:"lobby"`
}

// handleCreate opens a new lobby. The password check happens here; the
// core only receives the resulting capability flag.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	sum, playerID, err := s.svc.Create(req.AdminName, req.MaxPlayers, req.Difficulty, s.auth.Authorize(req.AdminPassword))
	if err != nil {
		writeLobbyError(w, err)
		return
	}

	// Record creation, best effort.
	if s.hist != nil {
		if err := s.hist.LobbyCreated(r.Context(), sum.Code, string(sum.Difficulty), sum.MaxPlayers, time.UnixMilli(sum.CreatedAt)); err != nil {
			log.Warn().Err(err).Str("code", sum.Code).Msg("record lobby creation")
		}
	}
	log.Info().Str("code", sum.Code).Int("maxPlayers", sum.MaxPlayers).Msg("lobby created")

	writeJSON(w, createRes{OK: true, Code: sum.Code, PlayerID: playerID, Lobby: sum})
}

type joinReq struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
type joinRes struct {
	OK       bool          `json:"ok"`
	PlayerID int           `json:"playerId"`
	Lobby    lobby.Summary `json:"lobby"`
}

// handleJoin adds a player to an open lobby.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	playerID, sum, err := s.svc.Join(req.Code, req.Name)
	if err != nil {
		writeLobbyError(w, err)
		return
	}
	writeJSON(w, joinRes{OK: true, PlayerID: playerID, Lobby: sum})
}

type startReq struct {
	Code          string `json:"code"`
	AdminPassword string `json:"adminPassword"`
}
type startRes struct {
	OK    bool          `json:"ok"`
	Lobby lobby.Summary `json:"lobby"`
}

// handleStart assigns roles and locks the lobby. The returned summary
// still hides who the impostor is and what the word was.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	sum, err := s.svc.Start(req.Code, s.auth.Authorize(req.AdminPassword))
	if err != nil {
		writeLobbyError(w, err)
		return
	}

	// Record start, best effort.
	if s.hist != nil {
		if err := s.hist.GameStarted(r.Context(), sum.Code, len(sum.Players), time.Now()); err != nil {
			log.Warn().Err(err).Str("code", sum.Code).Msg("record game start")
		}
	}
	log.Info().Str("code", sum.Code).Int("players", len(sum.Players)).Msg("game started")

	writeJSON(w, startRes{OK: true, Lobby: sum})
}
