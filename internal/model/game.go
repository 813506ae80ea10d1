package model

import "time"

// GameID uniquely identifies a game board
type GameID string

// NumberedTile is a tile on the board carrying a number
type NumberedTile struct {
	Position Position
	Number   int
}

// Game is a board definition created by a boss. It is never modified
// after creation.
type Game struct {
	ID            GameID
	Creator       string
	MaxNumber     int
	NumberedTiles []NumberedTile
	CreatedAt     time.Time
}
