package api

import "net/http"

// RegisterRoutes wires every API endpoint onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Auth
	mux.HandleFunc("POST /api/register", h.register)
	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("POST /api/validate-token", h.validateToken)

	// Chat
	mux.HandleFunc("GET /api/messages", h.listMessages)
	mux.HandleFunc("POST /api/messages", h.sendMessage)

	// Materials and uploads
	mux.HandleFunc("GET /api/materials", h.listMaterials)
	mux.HandleFunc("POST /api/materials", h.requireAuth(h.createMaterial))
	mux.HandleFunc("POST /api/upload", h.uploadFile)

	// Quizzes. Deliberately unauthenticated.
	mux.HandleFunc("POST /api/quiz/generate", h.generateQuiz)
	mux.HandleFunc("GET /api/quiz/{quizID}", h.getQuiz)
	mux.HandleFunc("GET /api/quizzes", h.listQuizzes)
	mux.HandleFunc("POST /api/quiz/submit", h.submitQuiz)
	mux.HandleFunc("GET /api/quiz-results", h.listResults)
	mux.HandleFunc("GET /api/quiz-report/{resultID}", h.quizReport)

	// Help tickets
	mux.HandleFunc("POST /api/help", h.createTicket)
}
