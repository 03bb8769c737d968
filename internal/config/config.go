package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Gemini settings
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`

	// Web server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
