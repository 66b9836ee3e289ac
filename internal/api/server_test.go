package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrab/internal/clone"
	"hubgrab/internal/config"
	"hubgrab/internal/logger"
	"hubgrab/internal/notify"
)

type fakeWorkflow struct {
	lastBody []byte
	called   int
	outcome  clone.Outcome
}

func (f *fakeWorkflow) Handle(body []byte) clone.Outcome {
	f.called++
	f.lastBody = body
	return f.outcome
}

func newTestServer(outcome clone.Outcome) (*Server, *fakeWorkflow) {
	wf := &fakeWorkflow{outcome: outcome}
	return NewServer(wf, logger.GetLogger()), wf
}

func assertCORSHeaders(t *testing.T, h http.Header) {
	t.Helper()
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, X-Requested-With", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", h.Get("Access-Control-Max-Age"))
}

func TestOptions_Always204(t *testing.T) {
	s, _ := newTestServer(clone.Outcome{})

	for _, path := range []string{"/", "/anything", "/deeply/nested/path"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://github.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code, "path: %s", path)
		assert.Empty(t, rec.Body.String(), "path: %s", path)
		assertCORSHeaders(t, rec.Header())
	}
}

func TestPost_DispatchesBodyAndWritesOutcome(t *testing.T) {
	s, wf := newTestServer(clone.Outcome{
		Status:  http.StatusOK,
		Message: "Success: Cloned 'widgets' and opened in code at '/tmp/widgets_x'.",
	})

	req := httptest.NewRequest(http.MethodPost, "/clone", strings.NewReader("https://github.com/acme/widgets"))
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, 1, wf.called)
	assert.Equal(t, "https://github.com/acme/widgets", string(wf.lastBody))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "widgets")
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assertCORSHeaders(t, rec.Header())
}

func TestPost_NoBody(t *testing.T) {
	s, wf := newTestServer(clone.Outcome{Status: http.StatusBadRequest, Message: "Error: No content in POST request or empty URL."})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, 1, wf.called)
	assert.Empty(t, wf.lastBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPost_NegativeContentLength(t *testing.T) {
	s, wf := newTestServer(clone.Outcome{Status: http.StatusBadRequest, Message: "Error: No content in POST request or empty URL."})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ignored"))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, 1, wf.called)
	assert.Empty(t, wf.lastBody, "unknown length must be treated as an empty body")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPost_InvalidURLEndToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Service.CloneDir = t.TempDir()
	log := logger.GetLogger()
	workflow := clone.NewWorkflow(cfg, notify.NewWithBackend(log, nil), log)
	s := NewServer(workflow, log)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not-a-url"))
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid GitHub URL")
}

func TestOtherMethodsRejected(t *testing.T) {
	s, wf := newTestServer(clone.Outcome{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/", nil)
		rec := httptest.NewRecorder()

		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "method: %s", method)
	}
	assert.Zero(t, wf.called)
}
