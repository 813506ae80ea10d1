// Package storagetest holds the behaviour every storage backend must share.
// Backends run it from their own tests by supplying a constructor.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
)

// Suite exercises a storage.Storage implementation
type Suite struct {
	suite.Suite

	// NewStorage returns a fresh, empty backend for each test
	NewStorage func(t *testing.T) storage.Storage

	Storage storage.Storage
	Ctx     context.Context
}

func (s *Suite) SetupTest() {
	s.Storage = s.NewStorage(s.T())
	s.Ctx = context.Background()
}

func (s *Suite) TearDownTest() {
	if s.Storage != nil {
		_ = s.Storage.Close()
	}
}

var created = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func objectID(n int) string {
	return fmt.Sprintf("%024x", n)
}

func (s *Suite) user(n int, phone string) *model.User {
	return &model.User{
		ID:           model.UserID(objectID(n)),
		Name:         "Alice",
		GamerKey:     "ace",
		Phone:        phone,
		PasswordHash: "$2a$04$hash",
		Role:         model.RolePlayer,
		CreatedAt:    created,
	}
}

// User tests

func (s *Suite) TestSaveAndGetUser() {
	u := s.user(1, "+16502530000")
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, u))

	got, err := s.Storage.GetUser(s.Ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
	s.Equal(u.Name, got.Name)
	s.Equal(u.GamerKey, got.GamerKey)
	s.Equal(u.Phone, got.Phone)
	s.Equal(u.PasswordHash, got.PasswordHash)
	s.Equal(u.Role, got.Role)
	s.WithinDuration(u.CreatedAt, got.CreatedAt, 0)
}

func (s *Suite) TestGetUserByPhone() {
	u := s.user(1, "+16502530000")
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, u))

	got, err := s.Storage.GetUserByPhone(s.Ctx, "+16502530000")
	s.Require().NoError(err)
	s.Equal(u.ID, got.ID)
}

func (s *Suite) TestGetUserNotFound() {
	_, err := s.Storage.GetUser(s.Ctx, model.UserID(objectID(99)))
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.Storage.GetUserByPhone(s.Ctx, "+15555550100")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *Suite) TestSaveUserRejectsDuplicatePhone() {
	s.Require().NoError(s.Storage.SaveUser(s.Ctx, s.user(1, "+16502530000")))

	err := s.Storage.SaveUser(s.Ctx, s.user(2, "+16502530000"))
	s.ErrorIs(err, model.ErrDuplicatePhone)

	// The original owner is untouched
	got, err := s.Storage.GetUserByPhone(s.Ctx, "+16502530000")
	s.Require().NoError(err)
	s.Equal(model.UserID(objectID(1)), got.ID)

	_, err = s.Storage.GetUser(s.Ctx, model.UserID(objectID(2)))
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	g := &model.Game{
		ID:        model.GameID(objectID(10)),
		Creator:   "boss1",
		MaxNumber: 5,
		NumberedTiles: []model.NumberedTile{
			{Position: model.Position{Row: 0, Col: 0}, Number: 1},
			{Position: model.Position{Row: 2, Col: 3}, Number: 5},
		},
		CreatedAt: created,
	}
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, g))

	got, err := s.Storage.GetGame(s.Ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.ID, got.ID)
	s.Equal(g.Creator, got.Creator)
	s.Equal(g.MaxNumber, got.MaxNumber)
	s.Equal(g.NumberedTiles, got.NumberedTiles)
	s.WithinDuration(g.CreatedAt, got.CreatedAt, 0)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, model.GameID(objectID(99)))
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Attempt tests

func (s *Suite) attempt(n int, gameID model.GameID) *model.Attempt {
	return &model.Attempt{
		ID:         model.AttemptID(objectID(1000 + n)),
		GameID:     gameID,
		Player:     fmt.Sprintf("player-%d", n),
		Path:       []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		Duration:   float64(n) + 0.5,
		Successful: n%2 == 0,
		Timestamp:  created.Add(time.Duration(n) * time.Second),
	}
}

func (s *Suite) TestSaveAndListAttempts() {
	gameID := model.GameID(objectID(10))
	mainTime := 3.25
	first := s.attempt(1, gameID)
	first.MainTime = &mainTime
	second := s.attempt(2, gameID)

	s.Require().NoError(s.Storage.SaveAttempt(s.Ctx, first))
	s.Require().NoError(s.Storage.SaveAttempt(s.Ctx, second))

	got, err := s.Storage.ListAttempts(s.Ctx, gameID, 100)
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	s.Equal(first.ID, got[0].ID)
	s.Equal(first.Player, got[0].Player)
	s.Equal(first.Path, got[0].Path)
	s.Equal(first.Duration, got[0].Duration)
	s.Equal(first.Successful, got[0].Successful)
	s.Require().NotNil(got[0].MainTime)
	s.Equal(mainTime, *got[0].MainTime)
	s.WithinDuration(first.Timestamp, got[0].Timestamp, 0)

	s.Equal(second.ID, got[1].ID)
	s.Nil(got[1].MainTime)
}

func (s *Suite) TestListAttemptsOnlyForGame() {
	a := model.GameID(objectID(10))
	b := model.GameID(objectID(11))
	s.Require().NoError(s.Storage.SaveAttempt(s.Ctx, s.attempt(1, a)))
	s.Require().NoError(s.Storage.SaveAttempt(s.Ctx, s.attempt(2, b)))

	got, err := s.Storage.ListAttempts(s.Ctx, a, 100)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(a, got[0].GameID)
}

func (s *Suite) TestListAttemptsEmpty() {
	got, err := s.Storage.ListAttempts(s.Ctx, model.GameID(objectID(10)), 100)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *Suite) TestListAttemptsRespectsLimitAndOrder() {
	gameID := model.GameID(objectID(10))
	for i := 0; i < 15; i++ {
		s.Require().NoError(s.Storage.SaveAttempt(s.Ctx, s.attempt(i, gameID)))
	}

	got, err := s.Storage.ListAttempts(s.Ctx, gameID, 10)
	s.Require().NoError(err)
	s.Require().Len(got, 10)
	for i, a := range got {
		s.Equal(model.AttemptID(objectID(1000+i)), a.ID)
	}
}

func (s *Suite) TestAttemptWithoutGameIsAccepted() {
	// Attempts reference games by id only; nothing checks the game exists
	gameID := model.GameID("not-a-real-game")
	s.Require().NoError(s.Storage.SaveAttempt(s.Ctx, s.attempt(1, gameID)))

	got, err := s.Storage.ListAttempts(s.Ctx, gameID, 100)
	s.Require().NoError(err)
	s.Len(got, 1)
}

func (s *Suite) TestPing() {
	s.NoError(s.Storage.Ping(s.Ctx))
}
