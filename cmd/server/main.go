package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vy1216/v4learnease/internal/api"
	"github.com/vy1216/v4learnease/internal/auth"
	"github.com/vy1216/v4learnease/internal/generator"
	"github.com/vy1216/v4learnease/internal/infrastructure/config"
	"github.com/vy1216/v4learnease/internal/llm"
	"github.com/vy1216/v4learnease/internal/service"
	"github.com/vy1216/v4learnease/internal/store"

	_ "github.com/vy1216/v4learnease/docs" // generated swagger docs
)

// @title           LearnEase API
// @version         1.0
// @description     Study assistant backend: chat with your materials, generate quizzes, and get graded reports with study advice.

// @host      localhost:3002
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	groq := llm.NewClient(cfg.GroqURL, cfg.GroqAPIKey, cfg.GroqModel)
	quizSvc := service.NewQuizService(db, generator.New(groq, logger), logger)
	chatSvc := service.NewChatService(db, groq, logger)
	indexer := service.NewIndexer(db, 3, 10, logger)
	go indexer.Run()
	defer indexer.Close()

	authSvc := auth.NewService(cfg.JWTSecret)
	handler := api.NewHandler(db, quizSvc, chatSvc, indexer, authSvc, logger, cfg.UploadDir, cfg.PublicBaseURL)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Backend server is running", "version": "1.0.0"}`))
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Uploaded files served statically
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(cfg.AllowedOrigins)(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Quiz generation waits on the LLM synchronously; the write timeout
		// has to outlive the LLM client's own 120s timeout.
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
