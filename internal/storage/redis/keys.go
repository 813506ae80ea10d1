package redis

import (
	"fmt"

	"github.com/mcoot/tilepath/internal/model"
)

// Key prefix for all tilepath data
const keyPrefix = "tilepath"

// userKey returns the Redis key for a User document
func userKey(id model.UserID) string {
	return userKeyPrefix() + string(id)
}

// userKeyPrefix is the part of userKey before the ID
func userKeyPrefix() string {
	return keyPrefix + ":user:"
}

// phoneIndexKey returns the Redis key for the phone -> user_id index
func phoneIndexKey(phone string) string {
	return fmt.Sprintf("%s:idx:phone:%s", keyPrefix, phone)
}

// gameKey returns the Redis key for a Game document
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// attemptKey returns the Redis key for an Attempt document
func attemptKey(id model.AttemptID) string {
	return fmt.Sprintf("%s:attempt:%s", keyPrefix, id)
}

// attemptsForGameIndexKey returns the Redis key for the LIST of attempt
// keys recorded against a game, oldest first
func attemptsForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:attempts_for_game:%s", keyPrefix, gameID)
}
