package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, loaded once at startup from the
// environment and immutable afterwards. Nothing reads the environment after
// Load returns.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT    JWTConfig
	Argon2 Argon2Config
	Login  LoginConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Seed   SeedConfig
}

// JWTConfig holds the token signing secret and default TTL.
type JWTConfig struct {
	Secret     string `env:"JWT_SECRET"`
	TTLMinutes int    `env:"JWT_TTL_MINUTES, default=30"`
}

// TTL returns the configured token lifetime.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Argon2Config tunes the password hashing cost. Memory is in KiB.
type Argon2Config struct {
	Time        uint32 `env:"ARGON2_TIME,        default=3"`
	Memory      uint32 `env:"ARGON2_MEMORY_KIB,  default=65536"`
	Parallelism uint8  `env:"ARGON2_PARALLELISM, default=2"`
}

// LoginConfig tunes the failed-login throttle.
type LoginConfig struct {
	MaxAttempts    int `env:"LOGIN_MAX_ATTEMPTS,    default=10"`
	LockoutMinutes int `env:"LOGIN_LOCKOUT_MINUTES, default=15"`
}

// LockoutWindow returns how long failed attempts are held against an
// identifier.
func (c LoginConfig) LockoutWindow() time.Duration {
	return time.Duration(c.LockoutMinutes) * time.Minute
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskify"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig describes the bootstrap administrator account.
type SeedConfig struct {
	AdminName     string `env:"SEED_ADMIN_NAME,     default=Administrator"`
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL,    default=admin@test.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD, default=Admin123*"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
