package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/tilepath/internal/api/stream"
	"github.com/mcoot/tilepath/internal/dependencies/clock"
	"github.com/mcoot/tilepath/internal/dependencies/ids"
	"github.com/mcoot/tilepath/internal/metrics"
	"github.com/mcoot/tilepath/internal/services/auth"
	"github.com/mcoot/tilepath/internal/services/game"
	"github.com/mcoot/tilepath/internal/services/password"
	"github.com/mcoot/tilepath/internal/services/phone"
	"github.com/mcoot/tilepath/internal/services/token"
	"github.com/mcoot/tilepath/internal/storage"
	"github.com/mcoot/tilepath/internal/storage/memory"
	mongostorage "github.com/mcoot/tilepath/internal/storage/mongo"
	redisstorage "github.com/mcoot/tilepath/internal/storage/redis"
	sqlitestorage "github.com/mcoot/tilepath/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeMongo  = "mongo"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// Services
	Hasher      *password.Hasher
	Phones      *phone.Normalizer
	Tokens      *token.Issuer
	AuthService *auth.Service
	GameService *game.Service

	// Live attempt feeds
	Streams *stream.HubManager

	Metrics *metrics.Metrics
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MongoConfig holds MongoDB connection settings (required if StorageType is "mongo")
	MongoConfig *mongostorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string

	// JWTSecret signs access tokens (required)
	JWTSecret string
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// BcryptCost is the password hashing cost; 0 means bcrypt's default
	BcryptCost int
	// PhoneRegion is the default region for numbers without a country code
	PhoneRegion string
}

// New creates a new application with all dependencies wired. The caller
// owns the returned App and must Close it.
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(store, clock.New(), ids.New(), cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func openStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(ctx, *cfg.RedisConfig)
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		return mongostorage.New(ctx, *cfg.MongoConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlitestorage.Open(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be one of memory, redis, mongo, sqlite", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, idGen ids.Generator, cfg Config, logger *slog.Logger) (*App, error) {
	tokens, err := token.New(cfg.JWTSecret, clk)
	if err != nil {
		return nil, err
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.TokenTTL == 0 {
		authCfg = auth.DefaultConfig()
	}

	// Create services
	hasher := password.New(cfg.BcryptCost)
	phones := phone.New(cfg.PhoneRegion)
	authService, err := auth.New(store, hasher, phones, tokens, idGen, clk, logger, authCfg)
	if err != nil {
		return nil, err
	}
	streams := stream.NewHubManager(logger)
	gameService := game.New(store, idGen, clk, logger, stream.NewPublisher(streams, logger))

	return &App{
		Storage:     store,
		Clock:       clk,
		IDs:         idGen,
		Hasher:      hasher,
		Phones:      phones,
		Tokens:      tokens,
		AuthService: authService,
		GameService: gameService,
		Streams:     streams,
		Metrics:     metrics.New(),
	}, nil
}

// Close disconnects stream clients and releases the storage backend
func (a *App) Close() error {
	a.Streams.Close()
	return a.Storage.Close()
}
