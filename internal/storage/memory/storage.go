package memory

import (
	"context"
	"sync"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.User
	phoneIndex map[string]model.UserID
	games      map[model.GameID]*model.Game
	attempts   map[model.GameID][]*model.Attempt // in insertion order
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		phoneIndex: make(map[string]model.UserID),
		games:      make(map[model.GameID]*model.Game),
		attempts:   make(map[model.GameID][]*model.Attempt),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.phoneIndex[user.Phone]; ok && owner != user.ID {
		return model.ErrDuplicatePhone
	}
	u := *user
	s.users[user.ID] = &u
	s.phoneIndex[user.Phone] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.phoneIndex[phone]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *game
	g.NumberedTiles = append([]model.NumberedTile(nil), game.NumberedTiles...)
	s.games[game.ID] = &g
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *game
	g.NumberedTiles = append([]model.NumberedTile(nil), game.NumberedTiles...)
	return &g, nil
}

// Attempt operations

func (s *Storage) SaveAttempt(ctx context.Context, attempt *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *attempt
	a.Path = append([]model.Position(nil), attempt.Path...)
	s.attempts[attempt.GameID] = append(s.attempts[attempt.GameID], &a)
	return nil
}

func (s *Storage) ListAttempts(ctx context.Context, gameID model.GameID, limit int) ([]*model.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.attempts[gameID]
	if limit > 0 && len(stored) > limit {
		stored = stored[:limit]
	}
	result := make([]*model.Attempt, len(stored))
	for i, a := range stored {
		cp := *a
		result[i] = &cp
	}
	return result, nil
}

// Lifecycle

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}
