package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreBadger = "badger"
	StoreMongo  = "mongo"
)

// Config holds all configuration for the application.
type Config struct {
	Addr            string        `env:"COMMENTS_ADDR,default=:8080"`
	ShutdownTimeout time.Duration `env:"COMMENTS_SHUTDOWN_TIMEOUT,default=10s"`

	Store      string `env:"COMMENTS_STORE,default=badger"`
	BadgerPath string `env:"COMMENTS_BADGER_PATH,default=data/badger"`
	MongoURI   string `env:"COMMENTS_MONGO_URI,default=mongodb://localhost:27017"`
	MongoDB    string `env:"COMMENTS_MONGO_DB,default=comments"`

	JWTSecret string        `env:"COMMENTS_JWT_SECRET"`
	TokenTTL  time.Duration `env:"COMMENTS_TOKEN_TTL,default=1h"`

	// RateLimit is requests per second per caller; 0 disables limiting.
	RateLimit float64 `env:"COMMENTS_RATE_LIMIT,default=20"`
	RateBurst int     `env:"COMMENTS_RATE_BURST,default=40"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`
}

// Load reads envFile when it exists, then decodes the environment.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreBadger, StoreMongo:
	default:
		return fmt.Errorf("COMMENTS_STORE must be %q or %q, got %q", StoreBadger, StoreMongo, c.Store)
	}
	if c.Store == StoreMongo && c.MongoURI == "" {
		return errors.New("COMMENTS_MONGO_URI is required for the mongo store")
	}
	if c.JWTSecret == "" {
		return errors.New("COMMENTS_JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("COMMENTS_TOKEN_TTL must be positive")
	}
	if c.RateLimit < 0 {
		return errors.New("COMMENTS_RATE_LIMIT cannot be negative")
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return errors.New("COMMENTS_RATE_BURST must be at least 1")
	}
	return nil
}
