package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/storage"
)

// Storage is a MongoDB-backed implementation of the storage interface.
// Identifiers are ObjectIDs rendered as 24-character hex strings.
type Storage struct {
	client   *mongo.Client // nil when the database was supplied by the caller
	db       *mongo.Database
	users    *mongo.Collection
	games    *mongo.Collection
	attempts *mongo.Collection
}

// New connects to MongoDB and prepares the collections
func New(ctx context.Context, cfg Config) (*Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewWithDatabase(client.Database(cfg.Database))
	s.client = client

	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

// NewWithDatabase creates a Mongo storage over an existing database handle
// (for testing). Indexes are not created.
func NewWithDatabase(db *mongo.Database) *Storage {
	return &Storage{
		db:       db,
		users:    db.Collection(usersCollection),
		games:    db.Collection(gamesCollection),
		attempts: db.Collection(attemptsCollection),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// EnsureIndexes creates the unique phone index and the attempt lookup index
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.phone index: %w", err)
	}

	_, err = s.attempts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "game_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create attempts.game_id index: %w", err)
	}
	return nil
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	oid, err := primitive.ObjectIDFromHex(string(user.ID))
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}

	_, err = s.users.ReplaceOne(ctx,
		bson.M{"_id": oid},
		toUserDoc(user, oid),
		options.Replace().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrDuplicatePhone
	}
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, model.ErrUserNotFound
	}
	return s.findUser(ctx, bson.M{"_id": oid})
}

func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"phone": phone})
}

func (s *Storage) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	oid, err := primitive.ObjectIDFromHex(string(game.ID))
	if err != nil {
		return fmt.Errorf("game id: %w", err)
	}

	_, err = s.games.InsertOne(ctx, toGameDoc(game, oid))
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, model.ErrGameNotFound
	}

	var doc gameDoc
	if err := s.games.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// Attempt operations

func (s *Storage) SaveAttempt(ctx context.Context, attempt *model.Attempt) error {
	oid, err := primitive.ObjectIDFromHex(string(attempt.ID))
	if err != nil {
		return fmt.Errorf("attempt id: %w", err)
	}

	_, err = s.attempts.InsertOne(ctx, toAttemptDoc(attempt, oid))
	return err
}

func (s *Storage) ListAttempts(ctx context.Context, gameID model.GameID, limit int) ([]*model.Attempt, error) {
	// ObjectIDs grow with insertion time, so sorting by _id keeps save order
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.attempts.Find(ctx, bson.M{"game_id": string(gameID)}, opts)
	if err != nil {
		return nil, err
	}

	var docs []attemptDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	attempts := make([]*model.Attempt, 0, len(docs))
	for _, d := range docs {
		attempts = append(attempts, d.toModel())
	}
	return attempts, nil
}

// Lifecycle

// Ping checks the primary is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Close disconnects the client if this storage opened it
func (s *Storage) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}
