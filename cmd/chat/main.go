package main

import (
	"log"

	"github.com/joho/godotenv"

	"boris-chat/internal/config"
	"boris-chat/internal/llm"
	"boris-chat/internal/session"
	"boris-chat/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	factory := func(credential string) (llm.Client, error) {
		return llm.NewGemini(credential, cfg.GeminiBaseURL, cfg.GeminiModel)
	}

	if cfg.GeminiAPIKey != "" {
		log.Printf("✅ Gemini API key loaded from environment")
	} else {
		log.Printf("💡 GEMINI_API_KEY not set; keys must be entered in the web UI")
	}

	sessions := session.NewManager(factory, cfg.GeminiAPIKey)

	server := web.NewServer(sessions, cfg.GeminiModel, cfg.HTTPPort)
	if err := server.Start(); err != nil {
		log.Fatalf("web server stopped: %v", err)
	}
}
