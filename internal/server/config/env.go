package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from the process environment. A .env file
// in the working directory is read first, without overriding variables that
// are already set. Supported variables:
//
//	ADDRESS              HTTP bind address (e.g. ":8080")
//	DATABASE_DSN         PostgreSQL DSN
//	SECRET_KEY           JWT HMAC secret
//	TOKEN_VALIDITY       token lifetime as a Go duration ("1h", "30m")
//	CORS_ALLOW_ORIGINS   comma-separated list of allowed origins
//
// Unparseable TOKEN_VALIDITY values are ignored and the previous value kept.
func parseEnv(config *Config) {
	// Missing .env is fine; variables may come from the real environment.
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		config.CORSAllowOrigins = v
	}
}
