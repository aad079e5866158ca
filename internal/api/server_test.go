package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

type fakeAnswerer struct {
	answer         string
	lastQuestion   string
	lastCustomerID string
	lastToken      string
}

func (f *fakeAnswerer) Answer(_ context.Context, question, customerID, token string) string {
	f.lastQuestion = question
	f.lastCustomerID = customerID
	f.lastToken = token
	return f.answer
}

func newTestServer(t *testing.T, answerer Answerer, origins ...string) http.Handler {
	t.Helper()
	srv, err := NewServer(ServerConfig{
		Answerer:    answerer,
		CORSOrigins: origins,
		Logger:      log.NewNop(),
	})
	require.NoError(t, err)
	return srv.Handler()
}

func TestNewServer_RequiresAnswerer(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestChat(t *testing.T) {
	answerer := &fakeAnswerer{answer: "You have no notifications."}
	handler := newTestServer(t, answerer)

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"question":"any notifications?","customer_id":"cust-1"}`))
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "You have no notifications.", resp.Answer)
	assert.Equal(t, "cust-1", resp.CustomerID)

	assert.Equal(t, "any notifications?", answerer.lastQuestion)
	assert.Equal(t, "cust-1", answerer.lastCustomerID)
	assert.Equal(t, "tok-123", answerer.lastToken)
}

func TestChat_EmptyQuestion(t *testing.T) {
	answerer := &fakeAnswerer{answer: "should not be reached"}
	handler := newTestServer(t, answerer)

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"question":"  "}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, answerer.lastQuestion, "answerer must not run for an empty question")

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "Question cannot be empty.", errResp.Message)
}

func TestChat_InvalidBody(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChat_NonBearerAuthIgnored(t *testing.T) {
	answerer := &fakeAnswerer{answer: "ok"}
	handler := newTestServer(t, answerer)

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"question":"hi"}`))
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, answerer.lastToken)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "tok", bearerToken("Bearer tok"))
	assert.Empty(t, bearerToken(""))
	assert.Empty(t, bearerToken("bearer tok"))
	assert.Empty(t, bearerToken("Basic abc"))
}

func TestInfo(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var info map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "ServeXa Chatbot Microservice", info["service"])
	assert.Equal(t, "running", info["status"])
}

func TestLiveness(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestReadiness_NoPool(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{answer: "hi"}, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{answer: "hi"}, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := recoveryMiddleware(log.NewNop())(panicking)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	handler := newTestServer(t, &fakeAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
