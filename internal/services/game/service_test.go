package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilepath/internal/dependencies/mocks"
	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
	"github.com/mcoot/tilepath/internal/storage/memory"
	"github.com/mcoot/tilepath/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	ids     *mocks.MockIDs
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs()
	s.service = New(s.storage, s.ids, s.clock, testutil.NopLogger(), nil)
	s.ctx = context.Background()
}

func exampleTiles() []model.NumberedTile {
	return []model.NumberedTile{
		{Position: model.Position{Row: 0, Col: 0}, Number: 1},
		{Position: model.Position{Row: 2, Col: 3}, Number: 5},
	}
}

// CreateGame tests

func (s *ServiceSuite) TestCreateGameSucceeds() {
	s.ids.QueueIDs("65a1b2c3d4e5f60718293a4b")

	game, err := s.service.CreateGame(s.ctx, CreateGameInput{
		Creator:       "boss1",
		MaxNumber:     5,
		NumberedTiles: exampleTiles(),
	})
	s.Require().NoError(err)

	s.Equal(model.GameID("65a1b2c3d4e5f60718293a4b"), game.ID)
	s.Equal("boss1", game.Creator)
	s.Equal(5, game.MaxNumber)
	s.Equal(exampleTiles(), game.NumberedTiles)
	s.Equal(s.clock.Now(), game.CreatedAt)
}

func (s *ServiceSuite) TestCreateGameRoundTrips() {
	created, err := s.service.CreateGame(s.ctx, CreateGameInput{
		Creator:       "boss1",
		MaxNumber:     5,
		NumberedTiles: exampleTiles(),
	})
	s.Require().NoError(err)

	got, err := s.service.GetGame(s.ctx, string(created.ID))
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal(created.Creator, got.Creator)
	s.Equal(created.MaxNumber, got.MaxNumber)
	s.Equal(created.NumberedTiles, got.NumberedTiles)
}

func (s *ServiceSuite) TestCreateGameCopiesTiles() {
	tiles := exampleTiles()
	game, err := s.service.CreateGame(s.ctx, CreateGameInput{Creator: "boss1", MaxNumber: 5, NumberedTiles: tiles})
	s.Require().NoError(err)

	tiles[0].Number = 99
	s.Equal(1, game.NumberedTiles[0].Number)
}

func (s *ServiceSuite) TestCreateGameEmptyTiles() {
	game, err := s.service.CreateGame(s.ctx, CreateGameInput{Creator: "boss1", MaxNumber: 0})
	s.Require().NoError(err)
	s.NotNil(game.NumberedTiles)
	s.Empty(game.NumberedTiles)
}

// GetGame tests

func (s *ServiceSuite) TestGetGameMalformedID() {
	_, err := s.service.GetGame(s.ctx, "not-an-object-id")
	s.ErrorIs(err, model.ErrMalformedID)
}

func (s *ServiceSuite) TestGetGameNotFound() {
	_, err := s.service.GetGame(s.ctx, "ffffffffffffffffffffffff")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestGetGameAcceptsUppercaseID() {
	s.ids.QueueIDs("65a1b2c3d4e5f60718293a4b")
	_, err := s.service.CreateGame(s.ctx, CreateGameInput{Creator: "boss1", MaxNumber: 1})
	s.Require().NoError(err)

	got, err := s.service.GetGame(s.ctx, "65A1B2C3D4E5F60718293A4B")
	s.Require().NoError(err)
	s.Equal(model.GameID("65a1b2c3d4e5f60718293a4b"), got.ID)
}

func (s *ServiceSuite) TestGetGameStoreFailure() {
	service := New(failingStorage{Storage: s.storage}, s.ids, s.clock, testutil.NopLogger(), nil)

	_, err := service.GetGame(s.ctx, "ffffffffffffffffffffffff")
	s.ErrorIs(err, errStoreDown)
	s.NotErrorIs(err, model.ErrGameNotFound)
}

// RecordAttempt tests

func (s *ServiceSuite) TestRecordAttemptSucceeds() {
	s.ids.QueueIDs("0000000000000000000003e8")
	mainTime := 10.0

	attempt, err := s.service.RecordAttempt(s.ctx, "65a1b2c3d4e5f60718293a4b", AttemptInput{
		Player:     "p1",
		Path:       []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		Duration:   12.5,
		Successful: true,
		MainTime:   &mainTime,
	})
	s.Require().NoError(err)

	s.Equal(model.AttemptID("0000000000000000000003e8"), attempt.ID)
	s.Equal(model.GameID("65a1b2c3d4e5f60718293a4b"), attempt.GameID)
	s.Equal(s.clock.Now(), attempt.Timestamp)

	listed, err := s.service.ListAttempts(s.ctx, "65a1b2c3d4e5f60718293a4b")
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal("p1", listed[0].Player)
	s.Equal(12.5, listed[0].Duration)
	s.True(listed[0].Successful)
	s.Require().NotNil(listed[0].MainTime)
	s.Equal(10.0, *listed[0].MainTime)
}

func (s *ServiceSuite) TestRecordAttemptForMissingGame() {
	_, err := s.service.RecordAttempt(s.ctx, "no-such-game", AttemptInput{Player: "p1", Duration: 1})
	s.Require().NoError(err)

	listed, err := s.service.ListAttempts(s.ctx, "no-such-game")
	s.Require().NoError(err)
	s.Len(listed, 1)
}

func (s *ServiceSuite) TestRecordAttemptStoreFailure() {
	service := New(failingStorage{Storage: s.storage}, s.ids, s.clock, testutil.NopLogger(), nil)

	_, err := service.RecordAttempt(s.ctx, "65a1b2c3d4e5f60718293a4b", AttemptInput{Player: "p1"})
	s.ErrorIs(err, errStoreDown)
}

type recordingNotifier struct {
	attempts []*model.Attempt
}

func (n *recordingNotifier) AttemptRecorded(attempt *model.Attempt) {
	n.attempts = append(n.attempts, attempt)
}

func (s *ServiceSuite) TestRecordAttemptNotifies() {
	notifier := &recordingNotifier{}
	service := New(s.storage, s.ids, s.clock, testutil.NopLogger(), notifier)

	attempt, err := service.RecordAttempt(s.ctx, "65a1b2c3d4e5f60718293a4b", AttemptInput{Player: "p1"})
	s.Require().NoError(err)

	s.Require().Len(notifier.attempts, 1)
	s.Same(attempt, notifier.attempts[0])
}

func (s *ServiceSuite) TestRecordAttemptStoreFailureDoesNotNotify() {
	notifier := &recordingNotifier{}
	service := New(failingStorage{Storage: s.storage}, s.ids, s.clock, testutil.NopLogger(), notifier)

	_, err := service.RecordAttempt(s.ctx, "65a1b2c3d4e5f60718293a4b", AttemptInput{Player: "p1"})
	s.Require().Error(err)
	s.Empty(notifier.attempts)
}

// ListAttempts tests

func (s *ServiceSuite) TestListAttemptsEmpty() {
	listed, err := s.service.ListAttempts(s.ctx, "65a1b2c3d4e5f60718293a4b")
	s.Require().NoError(err)
	s.NotNil(listed)
	s.Empty(listed)
}

func (s *ServiceSuite) TestListAttemptsCapsAtLimit() {
	gameID := "65a1b2c3d4e5f60718293a4b"
	for i := 0; i < 150; i++ {
		_, err := s.service.RecordAttempt(s.ctx, gameID, AttemptInput{
			Player:   fmt.Sprintf("p%d", i),
			Duration: float64(i),
		})
		s.Require().NoError(err)
	}

	listed, err := s.service.ListAttempts(s.ctx, gameID)
	s.Require().NoError(err)
	s.Require().Len(listed, MaxListedAttempts)
	for i, a := range listed {
		s.Equal(fmt.Sprintf("p%d", i), a.Player)
	}
}

var errStoreDown = errors.New("store down")

// failingStorage fails every game and attempt operation
type failingStorage struct {
	storage.Storage
}

func (failingStorage) GetGame(context.Context, model.GameID) (*model.Game, error) {
	return nil, errStoreDown
}

func (failingStorage) SaveAttempt(context.Context, *model.Attempt) error {
	return errStoreDown
}
