package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User     *domain.User
	Token    domain.TokenPayload
	RawToken string
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// RequireAccessToken admits requests carrying a valid access token and
// loads the token's user.
func (m *AuthMiddleware) RequireAccessToken(c *fiber.Ctx) error {
	principal, err := m.bearer(c, domain.TokenKindAccess)
	if err != nil {
		return err
	}

	user, err := m.users.GetByID(c.UserContext(), principal.Token.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	principal.User = user

	c.Locals(principalKey, principal)
	return c.Next()
}

// RequireRefreshToken admits requests carrying a valid refresh token.
// The user is not loaded: rotation only copies identity from the token.
func (m *AuthMiddleware) RequireRefreshToken(c *fiber.Ctx) error {
	principal, err := m.bearer(c, domain.TokenKindRefresh)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *AuthMiddleware) bearer(c *fiber.Ctx, kind domain.TokenKind) (*Principal, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	raw, err := ExtractToken(authHeader, SchemeBearer)
	if err != nil {
		return nil, err
	}

	payload, err := m.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	if payload.Kind != kind {
		return nil, domain.ErrWrongTokenKind
	}

	return &Principal{Token: payload, RawToken: raw}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
