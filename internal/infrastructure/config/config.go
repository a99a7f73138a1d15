package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// ErrMissingSecret is returned when JWT_SECRET is absent. The process must
// not serve traffic without a signing secret.
var ErrMissingSecret = errors.New("config: JWT_SECRET is required")

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds the lifetime of minted tokens. TokenLeeway is the
	// clock-skew grace applied when verifying expiry; zero means strict.
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	TokenLeeway time.Duration `env:"TOKEN_LEEWAY, default=0s"`

	// Sign-in throttle: block after MaxFailures failed attempts per window.
	SignInMaxFailures int           `env:"SIGNIN_MAX_FAILURES, default=10"`
	SignInWindow      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=teamflow"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}
