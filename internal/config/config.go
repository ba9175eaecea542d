package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	MongoURL      string
	MongoDatabase string
	JWTSecret     string
	TokenTTL      time.Duration
	ValkeyAddr    string
	AllowedOrigin string
}

// Load loads configuration from environment variables.
func Load() *Config {
	// Load .env file if it exists (useful for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		MongoURL:      os.Getenv("MONGO_URL"),
		MongoDatabase: getEnv("MONGO_DB", "sharexconnect"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		ValkeyAddr:    os.Getenv("VALKEY_ADDR"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:5173"),
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		log.Printf("Invalid TOKEN_TTL, falling back to 24h: %v", err)
		ttl = 24 * time.Hour
	}
	cfg.TokenTTL = ttl

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
