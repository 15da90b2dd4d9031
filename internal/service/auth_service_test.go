package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

// recordingUserRepository counts Create calls and can inject failures.
type recordingUserRepository struct {
	repository.UserRepository
	creates   int
	createErr error
}

func (r *recordingUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	return r.UserRepository.Create(ctx, user)
}

type authFixture struct {
	svc        *AuthService
	users      *recordingUserRepository
	tokens     *auth.TokenManager
	clock      *stubClock
	dispatched []events.Event
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users: &recordingUserRepository{UserRepository: repository.NewMemoryUserRepository()},
		clock: &stubClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.tokens = auth.NewTokenManager("test-secret", 300*time.Second, 3600*time.Second, auth.WithClock(f.clock))

	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, e events.Event) error {
		f.dispatched = append(f.dispatched, e)
		return nil
	})

	f.svc = NewAuthService(AuthDependencies{
		UserRepo:     f.users,
		TokenManager: f.tokens,
		Dispatcher:   dispatcher,
		Logger:       zap.NewNop(),
		BcryptCost:   bcrypt.MinCost,
	})
	return f
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, pair, err := f.svc.RegisterWithEmail(ctx, "alice", "alice@example.com", "p@ss")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.NotEqual(t, "p@ss", user.PasswordHash)

	access, err := f.tokens.Verify(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := f.tokens.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, access.SubjectID)
	assert.Equal(t, user.ID, refresh.SubjectID)
	assert.Equal(t, domain.TokenKindAccess, access.Kind)
	assert.Equal(t, domain.TokenKindRefresh, refresh.Kind)

	authed, err := f.svc.Authenticate(ctx, "alice@example.com", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	loginPair, err := f.svc.LoginWithEmail(ctx, domain.Credentials{Email: "alice@example.com", Password: "p@ss"})
	require.NoError(t, err)
	loginAccess, err := f.tokens.Verify(loginPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loginAccess.SubjectID)
	assert.Equal(t, "alice@example.com", loginAccess.Email)

	require.Len(t, f.dispatched, 1)
	assert.Equal(t, user.ID, f.dispatched[0].ActorID)
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.RegisterWithEmail(ctx, "alice", "alice@example.com", "p@ss")
	require.NoError(t, err)

	_, err = f.svc.Authenticate(ctx, "nobody@example.com", "p@ss")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.svc.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.LoginWithEmail(ctx, domain.Credentials{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Authenticate_MalformedStoredHash(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.UserRepository.Create(ctx, &domain.User{
		Nickname: "broken", Email: "broken@example.com", PasswordHash: "plaintext",
	}))

	_, err := f.svc.Authenticate(ctx, "broken@example.com", "plaintext")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.RegisterWithEmail(ctx, "alice", "alice@example.com", "p@ss")
	require.NoError(t, err)

	user, pair, err := f.svc.RegisterWithEmail(ctx, "alice2", "alice@example.com", "p@ss")
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)
	assert.Nil(t, user)
	assert.Equal(t, domain.TokenPair{}, pair)
	assert.Len(t, f.dispatched, 1)
}

func TestAuthService_RegisterPropagatesStoreConflict(t *testing.T) {
	f := newAuthFixture(t)
	f.users.createErr = &domain.DuplicateError{Field: "nickname"}

	_, pair, err := f.svc.RegisterWithEmail(context.Background(), "alice", "alice@example.com", "p@ss")

	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "nickname", dup.Field)
	assert.Equal(t, 1, f.users.creates)
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestAuthService_RotateToken(t *testing.T) {
	f := newAuthFixture(t)
	user, pair, err := f.svc.RegisterWithEmail(context.Background(), "alice", "alice@example.com", "p@ss")
	require.NoError(t, err)

	t.Run("refresh yields access", func(t *testing.T) {
		token, err := f.svc.RotateToken(pair.RefreshToken, false)
		require.NoError(t, err)

		payload, err := f.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenPayload{SubjectID: user.ID, Email: user.Email, Kind: domain.TokenKindAccess}, payload)
	})

	t.Run("refresh yields refresh", func(t *testing.T) {
		token, err := f.svc.RotateToken(pair.RefreshToken, true)
		require.NoError(t, err)

		payload, err := f.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, domain.TokenKindRefresh, payload.Kind)
		assert.Equal(t, user.ID, payload.SubjectID)
	})

	for _, produceRefresh := range []bool{false, true} {
		_, err := f.svc.RotateToken(pair.AccessToken, produceRefresh)
		assert.ErrorIs(t, err, domain.ErrWrongTokenKind, "produceRefresh=%v", produceRefresh)
	}

	_, err = f.svc.RotateToken("garbage", false)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestAuthService_RotateToken_FreshExpiry(t *testing.T) {
	f := newAuthFixture(t)
	_, pair, err := f.svc.RegisterWithEmail(context.Background(), "alice", "alice@example.com", "p@ss")
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(50 * time.Minute)
	rotated, err := f.svc.RotateToken(pair.RefreshToken, true)
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(20 * time.Minute)
	_, err = f.tokens.Verify(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	_, err = f.tokens.Verify(rotated)
	assert.NoError(t, err)

	_, err = f.svc.RotateToken(pair.RefreshToken, false)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
