package main

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. Values come from the environment;
// a local .env file is loaded first when present, without overwriting
// variables that are already set.
type Config struct {
	Addr        string
	DSN         string
	AutoMigrate bool
	UploadDir   string
	JWTSecret   string
	LogLevel    string
	OCREnabled  bool
	OCRLanguage string
	OCRTimeout  time.Duration
}

func loadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        envOr("ADDR", ":8081"),
		DSN:         os.Getenv("DB_DSN"),
		AutoMigrate: !isFalse(os.Getenv("DB_AUTO_MIGRATE")),
		UploadDir:   envOr("UPLOAD_DIR", "uploads"),
		JWTSecret:   envOr("JWT_SECRET", "dev-insecure-secret-change"), // development fallback
		LogLevel:    envOr("LOG_LEVEL", "info"),
		OCREnabled:  !isFalse(os.Getenv("OCR_ENABLED")),
		OCRLanguage: envOr("OCR_LANGUAGE", "eng"),
		OCRTimeout:  30 * time.Second,
	}
	if v := os.Getenv("OCR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OCRTimeout = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func isFalse(v string) bool {
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return true
	}
	return false
}
