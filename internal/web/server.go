// Package web serves the push/fold trainer over HTTP: JSON commands, the table
// view, and a websocket that pushes the view after every change.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/nier2kirito/PokerBots/internal/game"
)

// CookieName carries the session id.
const CookieName = "pokerbots_session"

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// Response answers every command.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Server handles HTTP requests for a Registry.
type Server struct {
	registry *Registry
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server over registry.
func NewServer(registry *Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		registry: registry,
		logger:   logger.WithPrefix("web"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/deal", s.handleDeal)
		r.Post("/decision/{decision}", s.handleDecision)
		r.Post("/restart", s.handleRestart)
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

// entry finds or creates the caller's session and refreshes its cookie.
func (s *Server) entry(w http.ResponseWriter, r *http.Request) *Entry {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}
	e := s.registry.Acquire(id)
	if e.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    e.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return e
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.registry.Len()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.entry(w, r).View())
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) {
	var err error
	s.entry(w, r).Do(func(sess *game.Session) { err = sess.NewHand() })
	switch {
	case errors.Is(err, game.ErrHandInProgress):
		writeJSON(w, http.StatusConflict, Response{Message: "Hand in progress."})
	case err != nil:
		s.logger.Error("Deal failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{Message: err.Error()})
	default:
		writeJSON(w, http.StatusOK, Response{Success: true})
	}
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	d, err := game.ParseDecision(chi.URLParam(r, "decision"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: "Invalid decision."})
		return
	}
	s.entry(w, r).Do(func(sess *game.Session) { err = sess.UserDecide(d) })
	switch {
	case errors.Is(err, game.ErrNotAwaitingDecision):
		writeJSON(w, http.StatusConflict, Response{Message: "Not time for decision."})
	case errors.Is(err, game.ErrInvalidDecision):
		writeJSON(w, http.StatusBadRequest, Response{Message: "Invalid decision."})
	case err != nil:
		s.logger.Error("Decision failed", "decision", d, "error", err)
		writeJSON(w, http.StatusInternalServerError, Response{Message: err.Error()})
	default:
		writeJSON(w, http.StatusOK, Response{Success: true})
	}
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.entry(w, r).Do(func(sess *game.Session) { sess.Restart() })
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Game restarted!"})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	e := s.entry(w, r)
	conn, err := s.upgrader.Upgrade(w, r, w.Header())
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	views, stop := e.Watch()
	defer stop()

	done := make(chan struct{})
	go readPump(conn, done)
	s.writePump(conn, e.View(), views, done)
}

// readPump discards client frames and closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, first game.View, views <-chan game.View, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	send := func(v game.View) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			s.logger.Debug("Failed to write view", "error", err)
			return false
		}
		return true
	}
	if !send(first) {
		return
	}
	for {
		select {
		case v := <-views:
			if !send(v) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
