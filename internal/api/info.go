package api

import (
	"net/http"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

// InfoHandler serves the root service descriptor.
type InfoHandler struct {
	logger log.Logger
}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{logger: log.NewNop()}
}

func (h *InfoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.info)
}

func (h *InfoHandler) info(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "ServeXa Chatbot Microservice",
		"version": "2.0.0",
		"status":  "running",
		"endpoints": map[string]string{
			"/api/chat": "POST - Chat endpoint for questions",
			"/health":   "GET - Health check endpoint",
		},
	}, h.logger)
}
