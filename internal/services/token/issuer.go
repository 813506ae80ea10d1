package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mcoot/tilepath/internal/dependencies/clock"
	"github.com/mcoot/tilepath/internal/model"
)

// Errors
var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingSecret = errors.New("token signing secret is required")
)

// Type is the token_type reported to clients
const Type = "bearer"

// Claims are the JWT claims carried by an access token
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject as a user identifier
func (c *Claims) UserID() model.UserID {
	return model.UserID(c.Subject)
}

// Token is a signed access token and the moment it stops being valid
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issuer signs and verifies HS256 access tokens
type Issuer struct {
	secret []byte
	clock  clock.Clock
}

// New creates an Issuer. The secret is read once at startup and never
// rotated while the process runs.
func New(secret string, clock clock.Clock) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	return &Issuer{
		secret: []byte(secret),
		clock:  clock,
	}, nil
}

// Issue signs a token for subject that expires ttl from now
func (i *Issuer) Issue(subject model.UserID, role model.Role, ttl time.Duration) (Token, error) {
	now := i.clock.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(subject),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the signature and expiry of raw and returns its claims
func (i *Issuer) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &claims, nil
}
