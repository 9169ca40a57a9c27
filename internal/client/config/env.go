package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the client.
const (
	envAPIBaseURL     = "FINTRACK_API_URL"
	envRequestTimeout = "FINTRACK_TIMEOUT"
	envGoogleClientID = "FINTRACK_GOOGLE_CLIENT_ID"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first if present;
// variables already set in the environment keep precedence (godotenv
// never overwrites existing values).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(envGoogleClientID); v != "" {
		cfg.GoogleClientID = v
	}
}
