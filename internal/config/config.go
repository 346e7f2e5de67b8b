package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration.
type Config struct {
	Port         string
	OpenAIAPIKey string
	TTSModel     string
	OutputDir    string
	BaseURL      string
}

// Load parses environment variables into Config and validates required
// values. A .env file in the working directory is read when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		TTSModel:     getEnv("TTS_MODEL", "gpt-4o-mini-tts"),
		OutputDir:    getEnv("OUTPUT_DIR", "audio"),
		BaseURL:      os.Getenv("BASE_URL"),
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, errors.New("OPENAI_API_KEY is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
