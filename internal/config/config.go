package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	TLSMode  string
}

type Config struct {
	Env       string
	Addr      string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string

	SMTP         SMTP
	ContactEmail string
}

func Load() (Config, error) {
	// Missing .env is fine; real environment always wins.
	_ = godotenv.Load()
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:       getenv("APP_ENV"),
		Addr:      getenv("APP_ADDR"),
		DBDSN:     getenv("APP_DB_DSN"),
		JWTSecret: getenv("APP_JWT_SECRET"),
		LogLevel:  getenv("APP_LOG_LEVEL"),
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:5000"
	}

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New("APP_ENV: must be one of dev, test, prod")
	}

	ttlRaw := getenv("APP_TOKEN_TTL")
	if ttlRaw == "" {
		cfg.TokenTTL = time.Hour
	} else {
		ttl, err := time.ParseDuration(ttlRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_TOKEN_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, errors.New("APP_TOKEN_TTL: must be > 0")
		}
		cfg.TokenTTL = ttl
	}

	cfg.SMTP = SMTP{
		Host:     getenv("APP_SMTP_HOST"),
		Username: getenv("APP_SMTP_USERNAME"),
		Password: getenv("APP_SMTP_PASSWORD"),
		TLSMode:  getenv("APP_SMTP_TLS"),
	}
	if portRaw := getenv("APP_SMTP_PORT"); portRaw != "" {
		port, err := strconv.Atoi(portRaw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, errors.New("APP_SMTP_PORT: must be a valid port number")
		}
		cfg.SMTP.Port = port
	} else if cfg.SMTP.Host != "" {
		cfg.SMTP.Port = 587
	}

	cfg.ContactEmail = strings.TrimSpace(strings.ToLower(getenv("APP_CONTACT_EMAIL")))
	if cfg.ContactEmail == "" {
		// Contact mail falls back to the sending account's own inbox.
		cfg.ContactEmail = strings.TrimSpace(strings.ToLower(cfg.SMTP.Username))
	}

	if cfg.IsProd() {
		if cfg.DBDSN == "" {
			return Config{}, errors.New("APP_DB_DSN: required in prod")
		}
		if len(cfg.JWTSecret) < 32 {
			return Config{}, errors.New("APP_JWT_SECRET: must be at least 32 bytes in prod")
		}
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("APP_JWT_SECRET: required")
	}

	return cfg, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

func (c Config) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.ContactEmail != ""
}
