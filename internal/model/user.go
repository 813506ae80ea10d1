package model

import "time"

// UserID uniquely identifies a registered user
type UserID string

// Role determines what a user may do in the game
type Role string

const (
	RoleBoss   Role = "boss"   // Creates game boards
	RolePlayer Role = "player" // Attempts game boards
)

// Valid reports whether r is one of the recognised roles
func (r Role) Valid() bool {
	switch r {
	case RoleBoss, RolePlayer:
		return true
	}
	return false
}

// User is a registered account. Phone is stored in E.164 form and is
// unique across all users.
type User struct {
	ID           UserID
	Name         string
	GamerKey     string // public alias shown in game
	Phone        string
	PasswordHash string // bcrypt hash, never sent to clients
	Role         Role
	CreatedAt    time.Time
}
