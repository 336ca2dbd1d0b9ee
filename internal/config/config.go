package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const DevTokenSecret = "dev-secret-change-me"

type Config struct {
	Addr     string `env:"ADDR" envDefault:":3333"`
	DiagAddr string `env:"DIAG_ADDR" envDefault:":9999"`
	DBPath   string `env:"DB_PATH" envDefault:"articles.db"`

	TokenSecret string        `env:"TOKEN_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"30m"`

	PageLimit int    `env:"PAGE_LIMIT" envDefault:"100"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Seed      bool   `env:"SEED" envDefault:"false"`
}

// Load reads ARTICLES_* environment variables.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses from environ instead of the process environment when it is not nil.
func LoadFrom(environ map[string]string) (Config, error) {
	opts := env.Options{Prefix: "ARTICLES_"}
	if environ != nil {
		opts.Environment = environ
	}

	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.TokenSecret == "":
		return errors.New("token secret must not be empty")
	case c.TokenTTL <= 0:
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	case c.PageLimit <= 0:
		return fmt.Errorf("page limit must be positive, got %d", c.PageLimit)
	case c.DBPath == "":
		return errors.New("db path must not be empty")
	}

	return nil
}
