package storage

import (
	"context"

	"github.com/mcoot/tilepath/internal/model"
)

// Storage defines the interface for data persistence. Every operation is a
// single write or read; backends are responsible for the atomicity of each
// call.
type Storage interface {
	// User operations. SaveUser returns model.ErrDuplicatePhone if another
	// user already holds the phone number.
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// Attempt operations. ListAttempts returns at most limit attempts for the
	// game in the order they were saved.
	SaveAttempt(ctx context.Context, attempt *model.Attempt) error
	ListAttempts(ctx context.Context, gameID model.GameID, limit int) ([]*model.Attempt, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
