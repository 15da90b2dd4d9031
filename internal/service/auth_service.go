package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
)

// AuthService coordinates registration, login and token rotation flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators of the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	TokenManager *auth.TokenManager
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	BcryptCost   int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.TokenManager,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: deps.BcryptCost,
	}
}

// Authenticate proves identity by email and password. No token is issued.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "unknown email"))
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "password mismatch"))
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// IssuePair signs an access and a refresh token for user.
func (s *AuthService) IssuePair(user *domain.User) (domain.TokenPair, error) {
	payload := domain.TokenPayload{SubjectID: user.ID, Email: user.Email}

	access, err := s.tokens.SignAccess(payload)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokens.SignRefresh(payload)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// LoginWithEmail authenticates credentials and issues a token pair.
func (s *AuthService) LoginWithEmail(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return s.IssuePair(user)
}

// RegisterWithEmail creates a user and issues a token pair so the caller does
// not need to log in again. Uniqueness is left to the repository, which
// reports domain.ErrDuplicateIdentifier.
func (s *AuthService) RegisterWithEmail(ctx context.Context, nickname, email, password string) (*domain.User, domain.TokenPair, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, domain.TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Nickname:     nickname,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, domain.TokenPair{}, err
	}

	pair, err := s.IssuePair(user)
	if err != nil {
		return nil, domain.TokenPair{}, err
	}

	publish(ctx, s.dispatcher, s.logger, events.EventUserRegistered, user.ID,
		events.UserRegisteredPayload{UserID: user.ID, Nickname: user.Nickname})
	return user, pair, nil
}

// RotateToken verifies a refresh token and signs a single new token: a refresh
// token when produceRefresh is set, an access token otherwise.
func (s *AuthService) RotateToken(token string, produceRefresh bool) (string, error) {
	payload, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	if payload.Kind != domain.TokenKindRefresh {
		return "", domain.ErrWrongTokenKind
	}

	if produceRefresh {
		return s.tokens.SignRefresh(payload)
	}
	return s.tokens.SignAccess(payload)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
