package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseGameID checks that raw is a well-formed store identifier
// (24 hex characters) and returns it in canonical lowercase form.
func ParseGameID(raw string) (GameID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedID, raw)
	}
	return GameID(oid.Hex()), nil
}
