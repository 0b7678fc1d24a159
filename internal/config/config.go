// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Database struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Name     string `json:"name"`
		SSLMode  string `json:"sslmode"`
	} `json:"database"`
	Storage struct {
		// Backend selects the persistence gateway implementation at startup:
		// "postgres" or "memory".
		Backend string `json:"backend"`
	} `json:"storage"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	}
	Sendgrid struct {
		APIKey   string `json:"api_key"`
		From     string `json:"from"`
		FromName string `json:"from_name"`
	} `json:"sendgrid"`
	Email struct {
		// Provider is "sendgrid", "smtp" or "" (notifications disabled).
		Provider string `json:"provider"`
	} `json:"email"`
	SMTP struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	// Public is the client-safe configuration exposed on GET /api/config.
	Public struct {
		APIBaseURL     string `json:"api_base_url"`
		GoogleClientID string `json:"google_client_id"`
	} `json:"public"`
	RateLimit struct {
		RequestsPerMinute int `json:"requests_per_minute"`
		Burst             int `json:"burst"`
	} `json:"rate_limit"`
}

func Load() *Config {
	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "shadowmatch")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Storage backend selection
	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", BackendPostgres)

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.ExpiryPeriod = time.Hour * 24

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	// Email configuration
	cfg.Email.Provider = getEnv("EMAIL_PROVIDER", "")
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "")
	cfg.Sendgrid.FromName = getEnv("SENDGRID_FROM_NAME", "ShadowMatch")
	cfg.SMTP.Host = getEnv("SMTP_HOST", "")
	cfg.SMTP.Port = getEnv("SMTP_PORT", "587")
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.From = getEnv("SMTP_FROM", "")

	// Client-visible configuration
	cfg.Public.APIBaseURL = getEnv("PUBLIC_API_BASE_URL", "http://localhost:8080")
	cfg.Public.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", "")

	// Rate limiting
	cfg.RateLimit.RequestsPerMinute = getEnvInt("RATE_LIMIT_RPM", 120)
	cfg.RateLimit.Burst = getEnvInt("RATE_LIMIT_BURST", 30)

	return cfg
}

// DatabaseURL builds the pgx5 connection URL used by the migration runner.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.Database.User),
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
