package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for plaintexts bcrypt would silently truncate
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// maxLength is the bcrypt input limit in bytes
const maxLength = 72

// Hasher produces and checks bcrypt password digests
type Hasher struct {
	cost int
}

// New creates a Hasher. A cost outside bcrypt's range falls back to
// bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted digest of plaintext
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxLength {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext produced digest
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
