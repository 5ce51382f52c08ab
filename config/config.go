// Package config loads the server configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config groups every setting; each sub-struct is one concern.
type Config struct {
	Server    ServerConfig    `envPrefix:"SERVER_"`
	Database  DatabaseConfig  `envPrefix:"DATABASE_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	Log       LogConfig       `envPrefix:"LOG_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

type ServerConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"9090"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	Path string `env:"PATH" envDefault:"./data/sphere.db"`
}

type JWTConfig struct {
	// Secret signs access tokens. Required.
	Secret            string        `env:"SECRET"`
	AccessTokenExpiry time.Duration `env:"ACCESS_EXPIRY" envDefault:"24h"`
}

type LogConfig struct {
	Level       string `env:"LEVEL" envDefault:"info"`
	Format      string `env:"FORMAT" envDefault:"console"` // console or json
	ServiceName string `env:"SERVICE_NAME" envDefault:"sphere"`
}

// CacheConfig bounds how long idle comment threads and chat sessions stay
// in memory.
type CacheConfig struct {
	ThreadTTL       time.Duration `env:"THREAD_TTL" envDefault:"10m"`
	ChatSessionTTL  time.Duration `env:"CHAT_SESSION_TTL" envDefault:"30m"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1m"`
}

type RateLimitConfig struct {
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW" envDefault:"2m"`
	SubmitMax        int           `env:"SUBMIT_MAX" envDefault:"5"`
	SubmitWindow     time.Duration `env:"SUBMIT_WINDOW" envDefault:"5s"`
	SubmitCooldown   time.Duration `env:"SUBMIT_COOLDOWN" envDefault:"15s"`
}

// Load reads .env if present, then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}
	if c.RateLimit.SubmitMax <= 0 || c.RateLimit.LoginMaxAttempts <= 0 {
		return errors.New("rate limits must be positive")
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
