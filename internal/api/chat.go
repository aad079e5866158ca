package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

// maxChatBodyBytes caps the chat request body.
const maxChatBodyBytes = 64 * 1024

// Answerer produces a chat answer for a question. Implemented by the
// intent router; always returns user-facing text.
type Answerer interface {
	Answer(ctx context.Context, question, customerID, token string) string
}

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	Question   string `json:"question"`
	CustomerID string `json:"customer_id,omitempty"`
}

// ChatResponse is the POST /api/chat reply.
type ChatResponse struct {
	Answer     string `json:"answer"`
	CustomerID string `json:"customer_id,omitempty"`
}

type ChatHandler struct {
	answerer Answerer
	logger   log.Logger
}

func NewChatHandler(answerer Answerer, logger log.Logger) *ChatHandler {
	return &ChatHandler{answerer: answerer, logger: logger}
}

func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.chat)
}

func (h *ChatHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	body := http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body", h.logger)
		return
	}
	_, _ = io.Copy(io.Discard, body)

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "empty_question", "Question cannot be empty.", h.logger)
		return
	}

	token := bearerToken(r.Header.Get("Authorization"))

	h.logger.Info("chat request",
		"question_length", len(req.Question),
		"customer_id", req.CustomerID,
		"has_token", token != "")

	answer := h.answerer.Answer(r.Context(), req.Question, req.CustomerID, token)

	writeJSON(w, http.StatusOK, ChatResponse{
		Answer:     answer,
		CustomerID: req.CustomerID,
	}, h.logger)
}

// bearerToken extracts the credential from an Authorization header.
// Anything that is not a Bearer scheme yields an empty token.
func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return token
}
