package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mcoot/tilepath/internal/model"
)

// The shared storagetest suite needs a live server; these tests drive the
// driver against scripted replies instead.

var created = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func ns(mt *mtest.T, collection string) string {
	return mt.DB.Name() + "." + collection
}

func TestSaveGame(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := s.SaveGame(context.Background(), &model.Game{
			ID:        "65a1b2c3d4e5f60718293a4b",
			Creator:   "boss1",
			MaxNumber: 2,
			NumberedTiles: []model.NumberedTile{
				{Position: model.Position{Row: 0, Col: 0}, Number: 1},
			},
			CreatedAt: created,
		})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("rejects non-hex id", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		err := s.SaveGame(context.Background(), &model.Game{ID: "nope"})
		assert.Error(mt, err)
	})
}

func TestGetGame(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes document", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		oid, _ := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4b")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, gamesCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "creator", Value: "boss1"},
			{Key: "maxNumber", Value: 5},
			{Key: "numberedTiles", Value: bson.A{
				bson.D{{Key: "position", Value: bson.A{0, 0}}, {Key: "number", Value: 1}},
				bson.D{{Key: "position", Value: bson.A{2, 3}}, {Key: "number", Value: 5}},
			}},
			{Key: "createdAt", Value: created},
		}))

		game, err := s.GetGame(context.Background(), "65a1b2c3d4e5f60718293a4b")
		require.NoError(mt, err)
		assert.Equal(mt, model.GameID("65a1b2c3d4e5f60718293a4b"), game.ID)
		assert.Equal(mt, "boss1", game.Creator)
		assert.Equal(mt, 5, game.MaxNumber)
		assert.Equal(mt, []model.NumberedTile{
			{Position: model.Position{Row: 0, Col: 0}, Number: 1},
			{Position: model.Position{Row: 2, Col: 3}, Number: 5},
		}, game.NumberedTiles)
		assert.True(mt, created.Equal(game.CreatedAt))
	})

	mt.Run("not found", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, gamesCollection), mtest.FirstBatch))

		_, err := s.GetGame(context.Background(), "65a1b2c3d4e5f60718293a4b")
		assert.ErrorIs(mt, err, model.ErrGameNotFound)
	})

	mt.Run("non-hex id is not found", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		_, err := s.GetGame(context.Background(), "nope")
		assert.ErrorIs(mt, err, model.ErrGameNotFound)
	})

	mt.Run("server error propagates", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
			Name:    "BadValue",
		}))

		_, err := s.GetGame(context.Background(), "65a1b2c3d4e5f60718293a4b")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, model.ErrGameNotFound)
	})
}

func TestSaveUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	user := &model.User{
		ID:    "000000000000000000000001",
		Name:  "Alice",
		Phone: "+16502530000",
		Role:  model.RolePlayer,
	}

	mt.Run("upserts", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, s.SaveUser(context.Background(), user))
	})

	mt.Run("duplicate phone", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: game.users index: phone_1",
		}))

		err := s.SaveUser(context.Background(), user)
		assert.ErrorIs(mt, err, model.ErrDuplicatePhone)
	})
}

func TestGetUserByPhone(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		oid, _ := primitive.ObjectIDFromHex("000000000000000000000001")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, usersCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Alice"},
			{Key: "gamer_key", Value: "ace"},
			{Key: "phone", Value: "+16502530000"},
			{Key: "password_hash", Value: "$2a$04$hash"},
			{Key: "role", Value: "boss"},
			{Key: "created_at", Value: created},
		}))

		user, err := s.GetUserByPhone(context.Background(), "+16502530000")
		require.NoError(mt, err)
		assert.Equal(mt, model.UserID("000000000000000000000001"), user.ID)
		assert.Equal(mt, "ace", user.GamerKey)
		assert.Equal(mt, model.RoleBoss, user.Role)
		assert.Equal(mt, "$2a$04$hash", user.PasswordHash)
	})

	mt.Run("not found", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, usersCollection), mtest.FirstBatch))

		_, err := s.GetUserByPhone(context.Background(), "+16502530000")
		assert.ErrorIs(mt, err, model.ErrUserNotFound)
	})
}

func TestListAttempts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes in order", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		first, _ := primitive.ObjectIDFromHex("0000000000000000000003e8")
		second, _ := primitive.ObjectIDFromHex("0000000000000000000003e9")

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, attemptsCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first},
				{Key: "game_id", Value: "65a1b2c3d4e5f60718293a4b"},
				{Key: "player", Value: "p1"},
				{Key: "path", Value: bson.A{bson.A{0, 0}, bson.A{0, 1}}},
				{Key: "duration", Value: 12.5},
				{Key: "successful", Value: true},
				{Key: "mainTime", Value: 10.0},
				{Key: "timestamp", Value: created},
			},
			bson.D{
				{Key: "_id", Value: second},
				{Key: "game_id", Value: "65a1b2c3d4e5f60718293a4b"},
				{Key: "player", Value: "p2"},
				{Key: "path", Value: bson.A{}},
				{Key: "duration", Value: 3.0},
				{Key: "successful", Value: false},
				{Key: "mainTime", Value: nil},
				{Key: "timestamp", Value: created},
			},
		))

		got, err := s.ListAttempts(context.Background(), "65a1b2c3d4e5f60718293a4b", 100)
		require.NoError(mt, err)
		require.Len(mt, got, 2)

		assert.Equal(mt, model.AttemptID(first.Hex()), got[0].ID)
		assert.Equal(mt, []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, got[0].Path)
		require.NotNil(mt, got[0].MainTime)
		assert.Equal(mt, 10.0, *got[0].MainTime)
		assert.True(mt, got[0].Successful)

		assert.Equal(mt, "p2", got[1].Player)
		assert.Nil(mt, got[1].MainTime)
		assert.Empty(mt, got[1].Path)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, int64(100), started.Command.Lookup("limit").Int64())
	})

	mt.Run("empty", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, attemptsCollection), mtest.FirstBatch))

		got, err := s.ListAttempts(context.Background(), "65a1b2c3d4e5f60718293a4b", 100)
		require.NoError(mt, err)
		assert.Empty(mt, got)
	})
}

func TestSaveAttemptKeepsRawGameID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := s.SaveAttempt(context.Background(), &model.Attempt{
			ID:        "0000000000000000000003e8",
			GameID:    "not-a-real-game",
			Player:    "p1",
			Timestamp: created,
		})
		require.NoError(mt, err)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "not-a-real-game", started.Command.Lookup("documents", "0", "game_id").StringValue())
	})
}
