package response

import (
	"time"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/services/auth"
	"github.com/mcoot/tilepath/internal/services/token"
)

// Message is a bare acknowledgement
type Message struct {
	Message string `json:"message"`
}

// User represents an account in API responses. The password hash is never
// included.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GamerKey string `json:"gamer_key"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Name:     u.Name,
		GamerKey: u.GamerKey,
		Phone:    u.Phone,
		Role:     string(u.Role),
	}
}

// Login is the response for a successful login
type Login struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// LoginFromResult creates a Login response from an auth result
func LoginFromResult(r *auth.LoginResult) Login {
	return Login{
		AccessToken: r.Token.Value,
		TokenType:   token.Type,
		ExpiresAt:   r.Token.ExpiresAt,
		User:        UserFromModel(r.User),
	}
}

// Me describes the caller's verified token
type Me struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MeFromClaims creates a Me response from verified claims
func MeFromClaims(c *token.Claims) Me {
	me := Me{
		ID:   c.Subject,
		Role: string(c.Role),
	}
	if c.ExpiresAt != nil {
		me.ExpiresAt = c.ExpiresAt.UTC()
	}
	return me
}

// GameCreated is the response for game creation
type GameCreated struct {
	GameID string `json:"game_id"`
}

// NumberedTile is a tile in a game response
type NumberedTile struct {
	Position [2]int `json:"position"`
	Number   int    `json:"number"`
}

// Game represents a stored game board
type Game struct {
	ID            string         `json:"_id"`
	Creator       string         `json:"creator"`
	MaxNumber     int            `json:"maxNumber"`
	NumberedTiles []NumberedTile `json:"numberedTiles"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	tiles := make([]NumberedTile, len(g.NumberedTiles))
	for i, t := range g.NumberedTiles {
		tiles[i] = NumberedTile{Position: t.Position.Pair(), Number: t.Number}
	}
	return Game{
		ID:            string(g.ID),
		Creator:       g.Creator,
		MaxNumber:     g.MaxNumber,
		NumberedTiles: tiles,
		CreatedAt:     g.CreatedAt,
	}
}

// Attempt represents a recorded attempt
type Attempt struct {
	ID         string    `json:"_id"`
	GameID     string    `json:"game_id"`
	Player     string    `json:"player"`
	Path       [][2]int  `json:"path"`
	Duration   float64   `json:"duration"`
	Successful bool      `json:"successful"`
	MainTime   *float64  `json:"mainTime"`
	Timestamp  time.Time `json:"timestamp"`
}

// AttemptFromModel converts a model.Attempt to a response Attempt
func AttemptFromModel(a *model.Attempt) Attempt {
	path := make([][2]int, len(a.Path))
	for i, p := range a.Path {
		path[i] = p.Pair()
	}
	return Attempt{
		ID:         string(a.ID),
		GameID:     string(a.GameID),
		Player:     a.Player,
		Path:       path,
		Duration:   a.Duration,
		Successful: a.Successful,
		MainTime:   a.MainTime,
		Timestamp:  a.Timestamp,
	}
}

// AttemptsFromModels converts a list, never returning nil
func AttemptsFromModels(attempts []*model.Attempt) []Attempt {
	out := make([]Attempt, len(attempts))
	for i, a := range attempts {
		out[i] = AttemptFromModel(a)
	}
	return out
}

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}
