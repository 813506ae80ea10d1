package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/tilepath/internal/dependencies/clock"
	"github.com/mcoot/tilepath/internal/dependencies/ids"
	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
)

// MaxListedAttempts caps how many attempts ListAttempts returns
const MaxListedAttempts = 100

// CreateGameInput describes a new game board
type CreateGameInput struct {
	Creator       string
	MaxNumber     int
	NumberedTiles []model.NumberedTile
}

// AttemptInput describes one play-through submitted by a player
type AttemptInput struct {
	Player     string
	Path       []model.Position
	Duration   float64
	Successful bool
	MainTime   *float64
}

// AttemptNotifier is told about every attempt once it is stored
type AttemptNotifier interface {
	AttemptRecorded(attempt *model.Attempt)
}

// Service creates game boards and records attempts against them
type Service struct {
	storage  storage.Storage
	ids      ids.Generator
	clock    clock.Clock
	logger   *slog.Logger
	notifier AttemptNotifier
}

// New creates a new game Service. notifier may be nil.
func New(storage storage.Storage, ids ids.Generator, clock clock.Clock, logger *slog.Logger, notifier AttemptNotifier) *Service {
	return &Service{
		storage:  storage,
		ids:      ids,
		clock:    clock,
		logger:   logger,
		notifier: notifier,
	}
}

// CreateGame stores a new board and returns it with its assigned ID
func (s *Service) CreateGame(ctx context.Context, in CreateGameInput) (*model.Game, error) {
	tiles := make([]model.NumberedTile, len(in.NumberedTiles))
	copy(tiles, in.NumberedTiles)

	game := &model.Game{
		ID:            model.GameID(s.ids.NewID()),
		Creator:       in.Creator,
		MaxNumber:     in.MaxNumber,
		NumberedTiles: tiles,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		s.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("save game: %w", err)
	}

	s.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("creator", game.Creator),
		slog.Int("tiles", len(game.NumberedTiles)),
	)

	return game, nil
}

// GetGame looks up a game by its raw identifier. A malformed identifier is
// reported as model.ErrMalformedID rather than not found.
func (s *Service) GetGame(ctx context.Context, rawID string) (*model.Game, error) {
	id, err := model.ParseGameID(rawID)
	if err != nil {
		return nil, err
	}

	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil, err
		}
		s.logger.Error("failed to load game",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("load game: %w", err)
	}

	return game, nil
}

// RecordAttempt appends an attempt for gameID. The game is not required to
// exist.
func (s *Service) RecordAttempt(ctx context.Context, gameID string, in AttemptInput) (*model.Attempt, error) {
	path := make([]model.Position, len(in.Path))
	copy(path, in.Path)

	attempt := &model.Attempt{
		ID:         model.AttemptID(s.ids.NewID()),
		GameID:     model.GameID(gameID),
		Player:     in.Player,
		Path:       path,
		Duration:   in.Duration,
		Successful: in.Successful,
		MainTime:   in.MainTime,
		Timestamp:  s.clock.Now(),
	}

	if err := s.storage.SaveAttempt(ctx, attempt); err != nil {
		s.logger.Error("failed to save attempt",
			slog.String("game_id", gameID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	s.logger.Info("attempt recorded",
		slog.String("game_id", gameID),
		slog.String("attempt_id", string(attempt.ID)),
		slog.String("player", attempt.Player),
		slog.Bool("successful", attempt.Successful),
	)

	if s.notifier != nil {
		s.notifier.AttemptRecorded(attempt)
	}

	return attempt, nil
}

// ListAttempts returns up to MaxListedAttempts attempts for gameID, oldest
// first
func (s *Service) ListAttempts(ctx context.Context, gameID string) ([]*model.Attempt, error) {
	attempts, err := s.storage.ListAttempts(ctx, model.GameID(gameID), MaxListedAttempts)
	if err != nil {
		s.logger.Error("failed to list attempts",
			slog.String("game_id", gameID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}
