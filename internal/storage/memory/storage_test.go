package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
	"github.com/mcoot/tilepath/internal/storage/storagetest"
)

func TestStorageSuite(t *testing.T) {
	suite.Run(t, &storagetest.Suite{
		NewStorage: func(t *testing.T) storage.Storage { return New() },
	})
}

func TestReturnedGameIsACopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	g := &model.Game{
		ID:            "000000000000000000000001",
		NumberedTiles: []model.NumberedTile{{Number: 1}},
	}
	require.NoError(t, s.SaveGame(ctx, g))

	// Mutating the caller's copy must not change what is stored
	g.NumberedTiles[0].Number = 42

	got, err := s.GetGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumberedTiles[0].Number)

	got.Creator = "changed"
	again, err := s.GetGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Creator)
}
