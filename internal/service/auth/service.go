package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	mqcontracts "minitweet/contracts/mq"
	"minitweet/internal/apperr"
	"minitweet/internal/model"
	"minitweet/pkg/logger"
	"minitweet/pkg/metrics"
	"minitweet/pkg/mq"
	"minitweet/pkg/util"
)

// UserStore is the credential store the service reads and writes.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasswordHasher hashes and verifies passwords with a salted adaptive hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// RevocationStore remembers revoked token ids.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NopRevocationStore never revokes anything.
type NopRevocationStore struct{}

func (NopRevocationStore) Revoke(context.Context, string, time.Duration) error { return nil }
func (NopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type Service struct {
	users     UserStore
	hasher    PasswordHasher
	revoked   RevocationStore
	events    mq.EventPublisher
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewService(users UserStore, hasher PasswordHasher, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		hasher:    hasher,
		revoked:   NopRevocationStore{},
		events:    mq.NopPublisher{},
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// WithRevocation enables logout through store.
func (s *Service) WithRevocation(store RevocationStore) *Service {
	s.revoked = store
	return s
}

// WithEvents publishes user.registered through pub.
func (s *Service) WithEvents(pub mq.EventPublisher) *Service {
	s.events = pub
	return s
}

// RegisterInput carries the sign-up fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Profile  string
}

// Register creates a new user. A taken email yields apperr.ErrConflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, fmt.Errorf("register: name, email and password are required: %w", apperr.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		Profile:      in.Profile,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	logger.WithTrace(ctx, s.logger).Info("User registered", zap.Int64("user_id", u.ID))

	// best-effort; the publisher logs failures
	_ = s.events.Publish(ctx, mqcontracts.RoutingKeyUserRegistered, mqcontracts.UserRegisteredPayload{
		UserID: u.ID,
		Email:  u.Email,
	})

	return u, nil
}

// Login checks user credentials and returns a signed access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.WithTrace(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			metrics.IncrementLogin("invalid_credentials")
			return "", fmt.Errorf("login: invalid email or password: %w", apperr.ErrAuth)
		}
		metrics.IncrementLogin("error")
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Compare(u.PasswordHash, password) {
		metrics.IncrementLogin("invalid_credentials")
		log.Info("Login rejected", zap.Int64("user_id", u.ID))
		return "", fmt.Errorf("login: invalid email or password: %w", apperr.ErrAuth)
	}

	token, err := util.GenerateJWT(u.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		metrics.IncrementLogin("error")
		return "", fmt.Errorf("login: sign token: %w", err)
	}

	metrics.IncrementLogin("success")
	return token, nil
}

// Authenticate validates token and returns its claims.
func (s *Service) Authenticate(ctx context.Context, token string) (*util.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token: %w", apperr.ErrAuth)
	}

	claims, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w: %w", apperr.ErrAuth, err)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		// revocation store unavailable: accept the signed token
		logger.WithTrace(ctx, s.logger).Warn("Token revocation check failed",
			zap.Int64("user_id", claims.UserID),
			zap.Error(err),
		)
		return claims, nil
	}
	if revoked {
		return nil, fmt.Errorf("token revoked: %w", apperr.ErrAuth)
	}

	return claims, nil
}

// Logout revokes the token described by claims until it expires.
func (s *Service) Logout(ctx context.Context, claims *util.Claims) error {
	if err := s.revoked.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	logger.WithTrace(ctx, s.logger).Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}
