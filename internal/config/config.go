package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config collects every environment-backed setting. main loads a .env file
// first (if present) and then reads the process environment once.
type Config struct {
	Port        string
	DatabaseDSN string

	JWTSecret string
	TokenTTL  time.Duration

	AllowOrigins []string

	SMTPHost  string
	SMTPUser  string
	SMTPPass  string
	FromEmail string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ttl := time.Hour
	if v := os.Getenv("ACCESS_TOKEN_EXPIRES_MIN"); v != "" {
		if mins, err := strconv.Atoi(v); err == nil {
			ttl = time.Duration(mins) * time.Minute
		}
	}

	origins := []string{"*"}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	return Config{
		Port:         port,
		DatabaseDSN:  os.Getenv("DATABASE_DSN"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     ttl,
		AllowOrigins: origins,
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		FromEmail:    os.Getenv("FROM_EMAIL"),
	}
}
