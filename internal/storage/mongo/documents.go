package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mcoot/tilepath/internal/model"
)

// Collection names
const (
	usersCollection    = "users"
	gamesCollection    = "games"
	attemptsCollection = "attempts"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	GamerKey     string             `bson:"gamer_key"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type numberedTileDoc struct {
	Position [2]int `bson:"position"`
	Number   int    `bson:"number"`
}

type gameDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Creator       string             `bson:"creator"`
	MaxNumber     int                `bson:"maxNumber"`
	NumberedTiles []numberedTileDoc  `bson:"numberedTiles"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// attemptDoc keeps game_id as the string the client sent, so attempts can
// reference games that do not exist.
type attemptDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	GameID     string             `bson:"game_id"`
	Player     string             `bson:"player"`
	Path       [][2]int           `bson:"path"`
	Duration   float64            `bson:"duration"`
	Successful bool               `bson:"successful"`
	MainTime   *float64           `bson:"mainTime"`
	Timestamp  time.Time          `bson:"timestamp"`
}

func toUserDoc(u *model.User, id primitive.ObjectID) userDoc {
	return userDoc{
		ID:           id,
		Name:         u.Name,
		GamerKey:     u.GamerKey,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		ID:           model.UserID(d.ID.Hex()),
		Name:         d.Name,
		GamerKey:     d.GamerKey,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Role:         model.Role(d.Role),
		CreatedAt:    d.CreatedAt,
	}
}

func toGameDoc(g *model.Game, id primitive.ObjectID) gameDoc {
	tiles := make([]numberedTileDoc, len(g.NumberedTiles))
	for i, t := range g.NumberedTiles {
		tiles[i] = numberedTileDoc{Position: t.Position.Pair(), Number: t.Number}
	}
	return gameDoc{
		ID:            id,
		Creator:       g.Creator,
		MaxNumber:     g.MaxNumber,
		NumberedTiles: tiles,
		CreatedAt:     g.CreatedAt,
	}
}

func (d gameDoc) toModel() *model.Game {
	tiles := make([]model.NumberedTile, len(d.NumberedTiles))
	for i, t := range d.NumberedTiles {
		tiles[i] = model.NumberedTile{Position: model.NewPosition(t.Position), Number: t.Number}
	}
	return &model.Game{
		ID:            model.GameID(d.ID.Hex()),
		Creator:       d.Creator,
		MaxNumber:     d.MaxNumber,
		NumberedTiles: tiles,
		CreatedAt:     d.CreatedAt,
	}
}

func toAttemptDoc(a *model.Attempt, id primitive.ObjectID) attemptDoc {
	path := make([][2]int, len(a.Path))
	for i, p := range a.Path {
		path[i] = p.Pair()
	}
	return attemptDoc{
		ID:         id,
		GameID:     string(a.GameID),
		Player:     a.Player,
		Path:       path,
		Duration:   a.Duration,
		Successful: a.Successful,
		MainTime:   a.MainTime,
		Timestamp:  a.Timestamp,
	}
}

func (d attemptDoc) toModel() *model.Attempt {
	path := make([]model.Position, len(d.Path))
	for i, p := range d.Path {
		path[i] = model.NewPosition(p)
	}
	return &model.Attempt{
		ID:         model.AttemptID(d.ID.Hex()),
		GameID:     model.GameID(d.GameID),
		Player:     d.Player,
		Path:       path,
		Duration:   d.Duration,
		Successful: d.Successful,
		MainTime:   d.MainTime,
		Timestamp:  d.Timestamp,
	}
}
