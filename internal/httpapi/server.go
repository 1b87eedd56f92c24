// Package httpapi exposes the chatbot over HTTP: a small JSON API for the
// embedded web widget plus health, readiness and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vickramb/unibot/internal/config"
	"github.com/vickramb/unibot/internal/flow"
	"github.com/vickramb/unibot/internal/observability"
)

type Server struct {
	cfg      config.Config
	router   Dispatcher
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
	static   http.Handler
	ready    func() error
}

// Dispatcher is the conversation engine behind the transport.
type Dispatcher interface {
	Start() flow.Response
	Restart(sessionID string) flow.Response
	Dispatch(ctx context.Context, sessionID, message string) flow.Response
}

func New(cfg config.Config, router Dispatcher, metrics *observability.Metrics, ready func() error) *Server {
	return &Server{
		cfg:     cfg,
		router:  router,
		metrics: metrics,
		static:  newStaticHandler(),
		ready:   ready,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin, so other sites can't drive a user's chat
				// session if the bot is ever exposed beyond localhost.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/api/start", s.handleStart)
	r.Post("/api/restart", s.handleRestart)
	r.Post("/api/message", s.handleMessage)
	r.Get("/api/chat/ws", s.handleChatWS)

	return r
}

type userInput struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(); err != nil {
			respondError(w, http.StatusServiceUnavailable, "not_ready", err.Error())
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

// handleStart returns the pre-session greeting. No session is created until
// the first name submission hits /api/message.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.router.Start())
}

// handleRestart deletes the caller's session, if any, and replays the
// greeting.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.router.Restart(strings.TrimSpace(in.SessionID)))
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(in.SessionID) == "" && strings.TrimSpace(in.Message) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "message is required to start a conversation")
		return
	}
	resp := s.router.Dispatch(r.Context(), strings.TrimSpace(in.SessionID), in.Message)
	respondJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
