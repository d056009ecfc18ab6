package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vy1216/v4learnease/internal/domain/chat"
	"github.com/vy1216/v4learnease/internal/domain/quiz"
	"github.com/vy1216/v4learnease/internal/service"
	"github.com/vy1216/v4learnease/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type GenerateQuizRequest struct {
	Topic   string         `json:"topic"`
	History []chat.Message `json:"history"`
}

type GenerateQuizResponse struct {
	ID string `json:"id"`
}

type SubmitQuizRequest struct {
	QuizID  string            `json:"quizId"`
	Answers []submittedAnswer `json:"answers"`
}

// submittedAnswer tolerates junk in timeMs: anything non-numeric counts as 0.
type submittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	TimeMs     any    `json:"timeMs"`
}

func (a submittedAnswer) toDomain() quiz.SubmittedAnswer {
	var timeMs int64
	switch v := a.TimeMs.(type) {
	case float64:
		timeMs = int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			timeMs = n
		}
	}
	return quiz.SubmittedAnswer{
		QuestionID: a.QuestionID,
		Answer:     a.Answer,
		TimeMs:     timeMs,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /api/quiz/generate
//
// Generation never fails on LLM trouble; the deterministic fallback kicks in
// instead, so the only error path here is a genuine internal failure.
func (h *Handler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuizRequest
	// The body is optional; a missing or malformed body means no topic and
	// no history, and the topic gets inferred from stored chat.
	_ = json.NewDecoder(r.Body).Decode(&req)

	q, err := h.quizzes.Generate(r.Context(), req.Topic, req.History)
	if err != nil {
		h.logger.Error("quiz generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate quiz")
		return
	}

	respondJSON(w, http.StatusCreated, GenerateQuizResponse{ID: q.ID})
}

// GET /api/quiz/{quizID}
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.store.GetQuiz(r.Context(), r.PathValue("quizID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Quiz not found")
			return
		}
		h.logger.Error("failed to load quiz", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, q)
}

// GET /api/quizzes
func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.store.ListQuizzes(r.Context(), store.ListLimit)
	if err != nil {
		h.logger.Error("failed to list quizzes", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, quizzes)
}

// POST /api/quiz/submit
func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Answers == nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	answers := make([]quiz.SubmittedAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = a.toDomain()
	}

	result, err := h.quizzes.Submit(r.Context(), req.QuizID, answers)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Invalid payload")
			return
		}
		h.logger.Error("failed to grade submission", "error", err, "quiz_id", req.QuizID)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// GET /api/quiz-results
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.ListResults(r.Context(), store.ListLimit)
	if err != nil {
		h.logger.Error("failed to list results", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// GET /api/quiz-report/{resultID}
func (h *Handler) quizReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.quizzes.Report(r.Context(), r.PathValue("resultID"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultNotFound):
			respondError(w, http.StatusNotFound, "Result not found")
		case errors.Is(err, service.ErrQuizNotFound):
			respondError(w, http.StatusNotFound, "Quiz not found")
		default:
			h.logger.Error("failed to build report", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	respondJSON(w, http.StatusOK, report)
}
