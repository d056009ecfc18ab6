package api

import "net/http"

// ── Request types ───────────────────────────────────────────────────────────

type SendMessageRequest struct {
	User    string   `json:"user"`
	FileIDs []string `json:"fileIds"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /api/messages
func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chats.History(r.Context())
	if err != nil {
		h.logger.Error("failed to load messages", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// POST /api/messages
func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.User == "" {
		respondError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	msg, err := h.chats.Send(r.Context(), req.User, req.FileIDs)
	if err != nil {
		h.logger.Error("failed to handle message", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, msg)
}
