package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Documents are stored as JSON strings; secondary lookups go through
// index keys.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

// saveUserScript claims the phone index and writes the user document in one
// step. An index entry whose owner document is gone is taken over.
// Returns 0 when another live user owns the phone.
var saveUserScript = redis.NewScript(`
local owner = redis.call('GET', KEYS[1])
if owner and owner ~= ARGV[1] and redis.call('EXISTS', ARGV[3] .. owner) == 1 then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1])
redis.call('SET', KEYS[2], ARGV[2])
return 1
`)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	keys := []string{phoneIndexKey(user.Phone), userKey(user.ID)}
	saved, err := saveUserScript.Run(ctx, s.client, keys, string(user.ID), data, userKeyPrefix()).Int()
	if err != nil {
		return err
	}
	if saved == 0 {
		return model.ErrDuplicatePhone
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	// Look up user ID from phone index
	userID, err := s.client.Get(ctx, phoneIndexKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userID))
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(game.ID), data, 0).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Attempt operations

func (s *Storage) SaveAttempt(ctx context.Context, attempt *model.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}

	aKey := attemptKey(attempt.ID)

	// Use a transaction so the document and its index entry land together
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, aKey, data, 0)
	pipe.RPush(ctx, attemptsForGameIndexKey(attempt.GameID), aKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListAttempts(ctx context.Context, gameID model.GameID, limit int) ([]*model.Attempt, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	// Oldest first, capped at limit
	keys, err := s.client.LRange(ctx, attemptsForGameIndexKey(gameID), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Attempt{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	attempts := make([]*model.Attempt, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Index entry without a document
		}
		var attempt model.Attempt
		if err := json.Unmarshal([]byte(str), &attempt); err != nil {
			return nil, err
		}
		attempts = append(attempts, &attempt)
	}

	return attempts, nil
}

// Lifecycle

// Ping checks the connection is alive
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}
