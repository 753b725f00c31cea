// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles; a local .env file is honored when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL      string        `env:"DATABASE_URL,required"`
	DBMaxConns       int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns       int           `env:"DB_MIN_CONNS" envDefault:"2"`
	DBAcquireTimeout time.Duration `env:"DB_ACQUIRE_TIMEOUT" envDefault:"5s"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Storefront request signing
	APIKey          string        `env:"API_KEY,required"`
	APISecret       string        `env:"API_SECRET,required"`
	SignatureWindow time.Duration `env:"SIGNATURE_WINDOW" envDefault:"5m"`

	// Admin authentication
	JWTSecret         string        `env:"JWT_SECRET,required"`
	JWTExpiry         time.Duration `env:"JWT_EXPIRY" envDefault:"12h"`
	AdminEmail        string        `env:"ADMIN_EMAIL,required"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH,required"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting. The per-key limiter and the global per-IP limiter
	// are configured independently and both enforced.
	RateLimitPerKeyEnabled bool          `env:"RATE_LIMIT_PER_KEY_ENABLED" envDefault:"true"`
	RateLimitPerKeyMax     int           `env:"RATE_LIMIT_PER_KEY_MAX" envDefault:"20"`
	RateLimitPerKeyWindow  time.Duration `env:"RATE_LIMIT_PER_KEY_WINDOW" envDefault:"1m"`
	RateLimitGlobalMax     int           `env:"RATE_LIMIT_GLOBAL_MAX" envDefault:"100"`
	RateLimitGlobalWindow  time.Duration `env:"RATE_LIMIT_GLOBAL_WINDOW" envDefault:"15m"`

	// CORS configuration
	// Comma-separated list of allowed origins
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Catalog
	FeaturedPartsLimit int `env:"FEATURED_PARTS_LIMIT" envDefault:"8"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// A .env file in the working directory is loaded first when present.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
