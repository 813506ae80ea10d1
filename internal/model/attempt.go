package model

import "time"

// AttemptID uniquely identifies a recorded attempt
type AttemptID string

// Attempt is a single play-through of a game by a player. Attempts are
// append-only: once recorded they are never changed.
type Attempt struct {
	ID         AttemptID
	GameID     GameID // not checked against existing games
	Player     string
	Path       []Position
	Duration   float64 // seconds
	Successful bool
	MainTime   *float64 // optional, seconds
	Timestamp  time.Time
}
