package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vy1216/v4learnease/internal/auth"
	"github.com/vy1216/v4learnease/internal/service"
	"github.com/vy1216/v4learnease/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers. Instead of relying
// on package-level globals, every handler method receives its dependencies
// through this struct.
type Handler struct {
	store   store.Store
	quizzes *service.QuizService
	chats   *service.ChatService
	indexer *service.Indexer
	auth    *auth.Service
	logger  *slog.Logger

	uploadDir     string
	publicBaseURL string
}

func NewHandler(
	s store.Store,
	quizzes *service.QuizService,
	chats *service.ChatService,
	indexer *service.Indexer,
	authSvc *auth.Service,
	logger *slog.Logger,
	uploadDir, publicBaseURL string,
) *Handler {
	return &Handler{
		store:         s,
		quizzes:       quizzes,
		chats:         chats,
		indexer:       indexer,
		auth:          authSvc,
		logger:        logger,
		uploadDir:     uploadDir,
		publicBaseURL: publicBaseURL,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// decodeJSON decodes the request body into v. Writes a 400 and returns false
// on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return true
	}
	h.logger.Error("store error", "error", err, "entity", entity)
	respondError(w, http.StatusInternalServerError, "internal error")
	return true
}

// baseURL is the prefix for generated file URLs: the configured public base
// when set, otherwise derived from the request.
func (h *Handler) baseURL(r *http.Request) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
