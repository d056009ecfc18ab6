package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/vy1216/v4learnease/internal/store"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// LLM provider (OpenAI-compatible). An empty API key disables the LLM
	// paths entirely; quiz generation and chat then run on their fallbacks.
	GroqURL    string
	GroqModel  string
	GroqAPIKey string

	JWTSecret string

	// DSN for the embedded store. Defaults to in-memory: state lives only
	// for the process lifetime.
	DatabaseDSN string

	UploadDir      string
	PublicBaseURL  string // base for generated file URLs; request host when empty
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		GroqURL:         getenvDefault("GROQ_URL", "https://api.groq.com/openai"),
		GroqModel:       getenvDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		JWTSecret:       getenvDefault("JWT_SECRET", "your-default-secret"),
		DatabaseDSN:     getenvDefault("DATABASE_DSN", store.MemoryDSN),
		UploadDir:       getenvDefault("UPLOAD_DIR", "public/uploads"),
		PublicBaseURL:   os.Getenv("PUBLIC_BASE_URL"),
		AllowedOrigins:  splitList(getenvDefault("ALLOWED_ORIGINS", "http://localhost:5173,https://v4learnease.vercel.app")),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
