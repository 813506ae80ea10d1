package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicatePhone = errors.New("phone number already registered")
	ErrInvalidRole    = errors.New("role must be one of: boss, player")

	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrMalformedID  = errors.New("malformed identifier")
)
