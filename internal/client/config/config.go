// Package config assembles the runtime settings for the fintrack CLI.
//
// Sources are applied in order, later ones winning:
// built-in defaults, environment (optionally loaded from a .env file),
// a JSON file given via -c/-config, and finally command-line flags.
package config

import "time"

// Config holds runtime settings for the fintrack CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - GoogleClientID: optional override for the OAuth client id; when
//     empty, the client id is fetched from the backend's /auth/config.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	GoogleClientID string
}

// LoadDefaults populates c with sensible defaults for local development.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
