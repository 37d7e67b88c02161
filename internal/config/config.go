// Package config loads application configuration from environment
// variables, optionally seeded from a .env file for local development.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable: strings for identifiers
// and secrets, with the OMDb base URL overridable for tests and
// local stubs.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	OMDBAPIKey  string // API key for the OMDb lookup service
	OMDBBaseURL string // OMDb endpoint override (empty means the public API)
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is applied first when present.
// Missing required variables cause the program to exit with a fatal
// log message.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine; real env vars win

	return Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		DBUser:      must("DB_USER"),
		DBPass:      os.Getenv("DB_PASS"),
		DBHost:      must("DB_HOST"),
		DBPort:      must("DB_PORT"),
		DBName:      must("DB_NAME"),
		OMDBAPIKey:  must("OMDB_API_KEY"),
		OMDBBaseURL: os.Getenv("OMDB_BASE_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
