package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
	"github.com/mcoot/tilepath/internal/storage/storagetest"
)

func openTemp(t *testing.T, path string) *Storage {
	t.Helper()
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	return s
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func(t *testing.T) storage.Storage {
			return openTemp(t, filepath.Join(t.TempDir(), "tilepath.db"))
		},
	})
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilepath.db")
	ctx := context.Background()

	s := openTemp(t, path)
	mainTime := 7.5
	require.NoError(t, s.SaveGame(ctx, &model.Game{
		ID:        "65a1b2c3d4e5f60718293a4b",
		Creator:   "boss1",
		MaxNumber: 1,
		NumberedTiles: []model.NumberedTile{
			{Position: model.Position{Row: 1, Col: 1}, Number: 1},
		},
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, s.SaveAttempt(ctx, &model.Attempt{
		ID:       "0000000000000000000003e8",
		GameID:   "65a1b2c3d4e5f60718293a4b",
		Player:   "p1",
		Path:     []model.Position{{Row: 1, Col: 1}},
		Duration: 9,
		MainTime: &mainTime,
	}))
	require.NoError(t, s.Close())

	s = openTemp(t, path)
	defer func() { _ = s.Close() }()

	game, err := s.GetGame(ctx, "65a1b2c3d4e5f60718293a4b")
	require.NoError(t, err)
	assert.Equal(t, "boss1", game.Creator)
	assert.Len(t, game.NumberedTiles, 1)

	attempts, err := s.ListAttempts(ctx, "65a1b2c3d4e5f60718293a4b", 100)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.NotNil(t, attempts[0].MainTime)
	assert.Equal(t, mainTime, *attempts[0].MainTime)
}

func TestSaveUserUpdatesSameID(t *testing.T) {
	s := openTemp(t, filepath.Join(t.TempDir(), "tilepath.db"))
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	user := &model.User{ID: "000000000000000000000001", Name: "Alice", Phone: "+16502530000", Role: model.RolePlayer}
	require.NoError(t, s.SaveUser(ctx, user))
	user.Name = "Alicia"
	require.NoError(t, s.SaveUser(ctx, user))

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
}
