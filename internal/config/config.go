// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/tilepath/internal/api"
	"github.com/mcoot/tilepath/internal/factory"
	"github.com/mcoot/tilepath/internal/services/auth"
	mongostorage "github.com/mcoot/tilepath/internal/storage/mongo"
	redisstorage "github.com/mcoot/tilepath/internal/storage/redis"
)

// Config holds every setting the server reads from the environment
type Config struct {
	// HTTP server
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT" envDefault:"8000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Logging
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"json"`

	// Storage
	StorageType   string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL      string `env:"REDIS_URL"`
	MongoURL      string `env:"MONGO_URL"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"game"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"tilepath.db"`

	// Auth
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`
	PhoneRegion string        `env:"PHONE_DEFAULT_REGION" envDefault:"US"`
	RequireAuth bool          `env:"REQUIRE_AUTH" envDefault:"false"`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

// Load reads a .env file if one exists, then parses and validates the
// environment
func Load() (*Config, error) {
	// A missing .env file is normal outside development
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment into a validated Config
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and the settings each storage backend needs
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
		validation.Field(&c.StorageType, validation.In(
			factory.StorageTypeMemory,
			factory.StorageTypeRedis,
			factory.StorageTypeMongo,
			factory.StorageTypeSQLite,
		)),
		validation.Field(&c.JWTSecret, validation.Required),
		validation.Field(&c.TokenTTL, validation.Min(time.Second)),
		validation.Field(&c.BcryptCost, validation.Min(bcrypt.MinCost), validation.Max(bcrypt.MaxCost)),
	)
	if err != nil {
		return err
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORAGE_TYPE=redis")
		}
	case factory.StorageTypeMongo:
		if c.MongoURL == "" {
			return errors.New("MONGO_URL is required when STORAGE_TYPE=mongo")
		}
	case factory.StorageTypeSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_TYPE=sqlite")
		}
	}
	return nil
}

// NewLogger builds the process logger in the configured format and level
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ServerConfig returns the HTTP server settings
func (c Config) ServerConfig() api.ServerConfig {
	cfg := api.DefaultServerConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.ReadTimeout = c.ReadTimeout
	cfg.WriteTimeout = c.WriteTimeout
	cfg.ShutdownTimeout = c.ShutdownTimeout
	return cfg
}

// FactoryConfig returns the settings needed to wire the application
func (c Config) FactoryConfig(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
		SQLitePath:  c.SQLitePath,
		JWTSecret:   c.JWTSecret,
		AuthConfig:  auth.Config{TokenTTL: c.TokenTTL},
		BcryptCost:  c.BcryptCost,
		PhoneRegion: c.PhoneRegion,
	}

	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeMongo:
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = c.MongoURL
		mongoCfg.Database = c.MongoDatabase
		cfg.MongoConfig = &mongoCfg
	}

	return cfg
}
