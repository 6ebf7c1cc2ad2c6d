package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port               string        `env:"PORT" envDefault:"8000"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	DBConnectAttempts  uint64        `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
	RedisURL           string        `env:"REDIS_URL"`                          // Empty disables the contact cache
	ContactCacheTTL    time.Duration `env:"CONTACT_CACHE_TTL" envDefault:"10m"` // How long an owner's contact list stays cached
	JWTSecret          string        `env:"JWT_SECRET"`                         // Secret key for JWT token signing
	JWTTTL             int           `env:"JWT_TTL_HOURS" envDefault:"1"`       // JWT token expiration time in hours
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"12"`
	CORSOrigins        []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LogLevel           int           `env:"LOG_LEVEL" envDefault:"0"`
	GinMode            string        `env:"GIN_MODE" envDefault:"debug"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`       // Rate limit for general API endpoints (requests per second)
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"20"`     // Burst size for rate limiting
	RateLimitAuthRPS   float64       `env:"RATE_LIMIT_AUTH_RPS" envDefault:"2"`   // Rate limit for register/login (stricter)
	RateLimitAuthBurst int           `env:"RATE_LIMIT_AUTH_BURST" envDefault:"5"` // Burst size for register/login
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and normalizes list settings.
func (c *Config) Validate() error {
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)

	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive, got %d", c.JWTTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	if c.DBConnectAttempts == 0 {
		c.DBConnectAttempts = 1
	}

	origins := make([]string, 0, len(c.CORSOrigins))
	for _, origin := range c.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORSOrigins = origins

	return nil
}

// HTTPAddress returns the address the HTTP server binds to.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}

// TokenTTL returns the JWT lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTL) * time.Hour
}
