// Package api provides the HTTP surface of the daemon: POST a GitHub URL
// to any path, OPTIONS for cross-origin preflights.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ternarybob/arbor"

	"hubgrab/internal/clone"
)

// CloneHandler processes one request body into an outcome.
type CloneHandler interface {
	Handle(body []byte) clone.Outcome
}

// Server represents the HTTP server.
type Server struct {
	workflow CloneHandler
	log      arbor.ILogger
	router   chi.Router
}

// NewServer creates the HTTP server around a clone workflow.
func NewServer(workflow CloneHandler, log arbor.ILogger) *Server {
	s := &Server{
		workflow: workflow,
		log:      log,
	}

	s.setupRouter()
	return s
}

// setupRouter configures all routes. The request path is never inspected;
// POST and OPTIONS are accepted anywhere, everything else gets the
// router's standard 405.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	// OptionsPassthrough hands preflights to our own handler so they
	// answer 204 with no body.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"POST", "OPTIONS"},
		AllowedHeaders:     []string{"Content-Type", "X-Requested-With"},
		MaxAge:             86400,
		OptionsPassthrough: true,
	}))

	r.Options("/*", s.handleOptions)
	r.Post("/*", s.handlePost)

	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
