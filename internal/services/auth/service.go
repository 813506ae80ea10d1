package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/tilepath/internal/dependencies/clock"
	"github.com/mcoot/tilepath/internal/dependencies/ids"
	"github.com/mcoot/tilepath/internal/model"
	"github.com/mcoot/tilepath/internal/services/phone"
	"github.com/mcoot/tilepath/internal/services/token"
	"github.com/mcoot/tilepath/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrPhoneExists        = errors.New("phone number already registered")
)

// dummyPassword is hashed once so logins for unknown phones still pay for a
// bcrypt comparison
const dummyPassword = "tilepath-no-such-user"

// RegisterInput holds the fields of a new account
type RegisterInput struct {
	Name     string
	GamerKey string
	Phone    string
	Password string
	Role     model.Role
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token token.Token
	User  *model.User
}

// Config holds configuration for the auth service
type Config struct {
	TokenTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// PasswordHasher produces and checks password digests
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// Service handles registration, login and token authentication
type Service struct {
	storage storage.Storage
	hasher  PasswordHasher
	phones  *phone.Normalizer
	tokens  *token.Issuer
	ids     ids.Generator
	clock   clock.Clock
	logger  *slog.Logger

	tokenTTL  time.Duration
	dummyHash string
}

// New creates a new auth Service. It fails if the hasher cannot produce the
// digest used for unknown-phone logins.
func New(
	storage storage.Storage,
	hasher PasswordHasher,
	phones *phone.Normalizer,
	tokens *token.Issuer,
	ids ids.Generator,
	clock clock.Clock,
	logger *slog.Logger,
	cfg Config,
) (*Service, error) {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	return &Service{
		storage:   storage,
		hasher:    hasher,
		phones:    phones,
		tokens:    tokens,
		ids:       ids,
		clock:     clock,
		logger:    logger,
		tokenTTL:  cfg.TokenTTL,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a new account. The phone number is normalised before
// the uniqueness check, so differently formatted copies of one number
// collide.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, model.ErrInvalidRole
	}

	normalized, err := s.phones.Normalize(in.Phone)
	if err != nil {
		return nil, err
	}

	_, err = s.storage.GetUserByPhone(ctx, normalized)
	if err == nil {
		return nil, ErrPhoneExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		s.logger.Error("failed to look up phone",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("look up phone: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           model.UserID(s.ids.NewID()),
		Name:         in.Name,
		GamerKey:     in.GamerKey,
		Phone:        normalized,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		// A concurrent registration can win the race after our lookup
		if errors.Is(err, model.ErrDuplicatePhone) {
			return nil, ErrPhoneExists
		}
		s.logger.Error("failed to save user",
			slog.String("user_id", string(user.ID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// Login checks phone and password and issues an access token. Unknown
// phones and wrong passwords fail with the same error.
func (s *Service) Login(ctx context.Context, rawPhone, plaintext string) (*LoginResult, error) {
	normalized, err := s.phones.Normalize(rawPhone)
	if err != nil {
		s.hasher.Verify(plaintext, s.dummyHash)
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.hasher.Verify(plaintext, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.ID, user.Role, s.tokenTTL)
	if err != nil {
		s.logger.Error("failed to issue token",
			slog.String("user_id", string(user.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user logged in",
		slog.String("user_id", string(user.ID)),
	)

	return &LoginResult{Token: tok, User: user}, nil
}

// Authenticate verifies an access token and checks its subject still exists
func (s *Service) Authenticate(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.GetUser(ctx, claims.UserID()); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, token.ErrInvalidToken
		}
		return nil, fmt.Errorf("look up token subject: %w", err)
	}

	return claims, nil
}
