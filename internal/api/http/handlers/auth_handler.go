package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// AuthHandler exposes login, registration and token rotation.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// PostTokenAccess POST /auth/token/access. Requires the refresh guard.
func (h *AuthHandler) PostTokenAccess(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("refresh token required")
	}
	token, err := h.auth.RotateToken(principal.RawToken, false)
	if err != nil {
		return err
	}
	return c.JSON(dto.AccessTokenResponse{AccessToken: token})
}

// PostTokenRefresh POST /auth/token/refresh. Requires the refresh guard.
func (h *AuthHandler) PostTokenRefresh(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("refresh token required")
	}
	token, err := h.auth.RotateToken(principal.RawToken, true)
	if err != nil {
		return err
	}
	return c.JSON(dto.RefreshTokenResponse{RefreshToken: token})
}

// PostLoginEmail POST /auth/login/email with a Basic email:password header.
func (h *AuthHandler) PostLoginEmail(c *fiber.Ctx) error {
	raw, err := auth.ExtractToken(c.Get(fiber.HeaderAuthorization), auth.SchemeBasic)
	if err != nil {
		return err
	}
	creds, err := auth.DecodeBasicToken(raw)
	if err != nil {
		return err
	}

	pair, err := h.auth.LoginWithEmail(c.UserContext(), creds)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// PostRegisterEmail POST /auth/register/email.
func (h *AuthHandler) PostRegisterEmail(c *fiber.Ctx) error {
	var req dto.RegisterEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	_, pair, err := h.auth.RegisterWithEmail(c.UserContext(), req.Nickname, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).
		JSON(dto.TokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}
