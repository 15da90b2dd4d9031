package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 300 * time.Second
	DefaultRefreshTTL = 3600 * time.Second
)

// Clock supplies the current time for issuing and validating tokens.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      Clock
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source.
func WithClock(clock Clock) TokenOption {
	return func(tm *TokenManager) {
		if clock != nil {
			tm.clock = clock
		}
	}
}

// NewTokenManager builds a new manager. Non-positive TTLs fall back to the defaults.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration, opts ...TokenOption) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	tm := &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      SystemClock,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// Claims describes JWT payload.
type Claims struct {
	Email string           `json:"email"`
	Type  domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TTL returns the configured lifetime for kind.
func (tm *TokenManager) TTL(kind domain.TokenKind) time.Duration {
	if kind == domain.TokenKindRefresh {
		return tm.refreshTTL
	}
	return tm.accessTTL
}

// Sign builds and signs a JWT of the given kind that expires after ttl.
// The kind argument wins over payload.Kind.
func (tm *TokenManager) Sign(payload domain.TokenPayload, kind domain.TokenKind, ttl time.Duration) (string, error) {
	if !kind.Valid() {
		return "", errors.New("unknown token kind")
	}

	now := tm.clock.Now()
	claims := &Claims{
		Email: payload.Email,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   payload.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt(now, ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// expiresAt rounds now+ttl up to the next whole second. NumericDate drops
// sub-second precision, so rounding down would cut the lifetime short.
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if truncated := exp.Truncate(time.Second); !truncated.Equal(exp) {
		return truncated.Add(time.Second)
	}
	return exp
}

// SignAccess signs an access token with the configured access TTL.
func (tm *TokenManager) SignAccess(payload domain.TokenPayload) (string, error) {
	return tm.Sign(payload, domain.TokenKindAccess, tm.accessTTL)
}

// SignRefresh signs a refresh token with the configured refresh TTL.
func (tm *TokenManager) SignRefresh(payload domain.TokenPayload) (string, error) {
	return tm.Sign(payload, domain.TokenKindRefresh, tm.refreshTTL)
}

// Verify validates signature and expiry and returns the embedded payload.
// The signature is checked before the claims, so ErrTokenExpired is only
// reported for tokens this manager actually signed.
func (tm *TokenManager) Verify(tokenStr string) (domain.TokenPayload, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenPayload{}, domain.ErrTokenExpired
		}
		return domain.TokenPayload{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid || !claims.Type.Valid() || claims.Subject == "" {
		return domain.TokenPayload{}, domain.ErrTokenInvalid
	}

	return domain.TokenPayload{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Kind:      claims.Type,
	}, nil
}
