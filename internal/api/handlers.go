package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	// A missing or unparsable length reaches the handler as -1; treat it
	// as an empty body rather than an error.
	length := r.ContentLength
	if length < 0 {
		length = 0
	}

	var body []byte
	if length > 0 {
		var err error
		body, err = io.ReadAll(io.LimitReader(r.Body, length))
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to read request body")
			body = nil
		}
	}

	outcome := s.workflow.Handle(body)
	s.writeText(w, outcome.Status, outcome.Message)
}

func (s *Server) writeText(w http.ResponseWriter, status int, message string) {
	writeCORSHeaders(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(message)))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// writeCORSHeaders sets the permissive cross-origin policy on every
// response, preflight or not.
func writeCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")
	h.Set("Access-Control-Max-Age", "86400")
}

// requestLogger logs every request through arbor, replacing the router's
// default access logging.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()[:8]
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("duration", time.Since(start).String()).
			Msg("request handled")
	})
}
