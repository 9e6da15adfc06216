package config

import (
	"log"
	"os"
)

// Config holds the core runtime settings read from the environment at
// startup. Policy, cache, and rate-limit knobs load separately so they can
// carry defaults; everything here is required.
type Config struct {
	Env       string // application environment (dev, test, prod)
	Port      string // HTTP port to listen on
	DBUser    string // database username
	DBPass    string // database password (optional)
	DBHost    string // database host address
	DBPort    string // database port number
	DBName    string // database name
	JWTSecret string // secret used to verify gateway-issued access tokens
}

// Load reads the required environment variables and exits with a fatal log
// message when one is missing.
func Load() Config {
	return Config{
		Env:       must("APP_ENV"),
		Port:      must("APP_PORT"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    must("DB_HOST"),
		DBPort:    must("DB_PORT"),
		DBName:    must("DB_NAME"),
		JWTSecret: must("JWT_SECRET"),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
