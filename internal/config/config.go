package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime parameter of the API process. It is loaded once
// in main and handed to constructors; no component reads the environment on
// its own.
type Config struct {
	Addr        string        `env:"PAWPAD_ADDR" envDefault:":8000"`
	Env         string        `env:"PAWPAD_ENV" envDefault:"development"`
	DatabaseDSN string        `env:"PAWPAD_PG_DSN"`
	JWTSecret   string        `env:"PAWPAD_JWT_SECRET" envDefault:"change-this-secret"`
	TokenTTL    time.Duration `env:"PAWPAD_TOKEN_TTL" envDefault:"8h"`
	EnvelopeKey string        `env:"PAWPAD_ENVELOPE_KEY"`
	RateBurst   int           `env:"PAWPAD_RATE_BURST" envDefault:"50"`
	RatePerSec  int           `env:"PAWPAD_RATE_PER_SEC" envDefault:"25"`
	Media       Media         `envPrefix:"PAWPAD_MEDIA_"`
}

// Media contains object storage parameters for contract and profile images.
type Media struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"pawpad-media"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Production reports whether the process runs in production mode. Error
// responses suppress internal messages when it does.
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, errors.New("token ttl must be greater than zero")
	}
	return cfg, nil
}
