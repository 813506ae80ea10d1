package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/services/auth"
	"github.com/mcoot/tilepath/internal/services/game"
)

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name"`
	GamerKey string `json:"gamer_key"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the request shape. Role membership and phone format are
// checked by the auth service.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.GamerKey, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Phone, validation.Required, validation.Length(1, 32)),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.Required),
	)
}

// Input converts the request to the auth service input
func (r RegisterRequest) Input() auth.RegisterInput {
	return auth.RegisterInput{
		Name:     r.Name,
		GamerKey: r.GamerKey,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     model.Role(r.Role),
	}
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate checks the request shape
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// NumberedTileRequest is one tile of a new game board
type NumberedTileRequest struct {
	Position []int `json:"position"`
	Number   *int  `json:"number"`
}

// Validate checks the tile has a [x, y] position and a number
func (t NumberedTileRequest) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Position, validation.Required, validation.Length(2, 2)),
		validation.Field(&t.Number, validation.NotNil),
	)
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Creator       string                `json:"creator"`
	MaxNumber     *int                  `json:"maxNumber"`
	NumberedTiles []NumberedTileRequest `json:"numberedTiles"`
}

// Validate checks structural shape only; tile numbers are not compared
// against maxNumber
func (r CreateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Creator, validation.Required),
		validation.Field(&r.MaxNumber, validation.NotNil),
		validation.Field(&r.NumberedTiles, validation.NotNil),
	)
}

// Input converts the request to the game service input. Call Validate first.
func (r CreateGameRequest) Input() game.CreateGameInput {
	tiles := make([]model.NumberedTile, len(r.NumberedTiles))
	for i, t := range r.NumberedTiles {
		tiles[i] = model.NumberedTile{
			Position: model.NewPosition([2]int{t.Position[0], t.Position[1]}),
			Number:   *t.Number,
		}
	}
	return game.CreateGameInput{
		Creator:       r.Creator,
		MaxNumber:     *r.MaxNumber,
		NumberedTiles: tiles,
	}
}

// AttemptRequest is the request body for recording an attempt
type AttemptRequest struct {
	Player     string   `json:"player"`
	Path       [][]int  `json:"path"`
	Duration   *float64 `json:"duration"`
	Successful *bool    `json:"successful"`
	MainTime   *float64 `json:"mainTime,omitempty"`
}

// Validate checks the request shape
func (r AttemptRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Player, validation.Required),
		validation.Field(&r.Path, validation.NotNil, validation.By(pairs)),
		validation.Field(&r.Duration, validation.NotNil),
		validation.Field(&r.Successful, validation.NotNil),
	)
}

// Input converts the request to the game service input. Call Validate first.
func (r AttemptRequest) Input() game.AttemptInput {
	path := make([]model.Position, len(r.Path))
	for i, p := range r.Path {
		path[i] = model.NewPosition([2]int{p[0], p[1]})
	}
	return game.AttemptInput{
		Player:     r.Player,
		Path:       path,
		Duration:   *r.Duration,
		Successful: *r.Successful,
		MainTime:   r.MainTime,
	}
}

// pairs checks every element of a path is an [x, y] pair
func pairs(value any) error {
	path, _ := value.([][]int)
	for i, p := range path {
		if len(p) != 2 {
			return fmt.Errorf("position %d must have exactly 2 coordinates", i)
		}
	}
	return nil
}
