package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EmailConfig holds mailer settings. Provider "noop" disables real sends.
type EmailConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	DBUrl              string
	CORSAllowedOrigins []string
	Email              EmailConfig
}

// Load loads configuration from environment variables, reading a .env file
// first when not in production. DATABASE_URL is required; its absence is a
// configuration error and the process must not start without it.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env may not exist; system environment variables win.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        os.Getenv("PORT"),
		DBUrl:       os.Getenv("DATABASE_URL"),
		Email: EmailConfig{
			Provider:           os.Getenv("EMAIL_PROVIDER"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.DBUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	}

	return cfg, nil
}
