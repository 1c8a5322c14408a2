package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// passwordPlaceholder is the literal token Atlas-style connection strings use
// in place of the real password (mongodb+srv://user:<password>@host/...).
const passwordPlaceholder = "<password>"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URL      string `env:"MONGODB_URL"`
	Password string `env:"MONGODB_PASSWORD"`
	Database string `env:"MONGODB_DATABASE"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// resolves the MongoDB connection string. Missing required MongoDB settings
// are a fatal startup condition surfaced as an error to the caller.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Mongo.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolve validates the required MongoDB settings and substitutes the password
// placeholder. Only the password is percent-encoded, so special characters in
// it cannot corrupt the URL.
func (m *MongoConfig) resolve() error {
	m.URL = strings.TrimSpace(m.URL)
	m.Password = strings.TrimSpace(m.Password)
	m.Database = strings.TrimSpace(m.Database)

	if m.URL == "" {
		return errors.New("config: environment variable MONGODB_URL is missing or empty")
	}

	if strings.Contains(m.URL, passwordPlaceholder) {
		if m.Password == "" {
			return errors.New("config: MONGODB_URL contains '<password>' placeholder but MONGODB_PASSWORD is not set")
		}
		m.URL = strings.Replace(m.URL, passwordPlaceholder, url.QueryEscape(m.Password), 1)
	}

	if m.Database == "" {
		return errors.New("config: environment variable MONGODB_DATABASE is missing or empty")
	}

	return nil
}
