package auth

import (
	"encoding/base64"
	"strings"

	"github.com/spec-kit/blog-service/internal/domain"
)

// Authorization header schemes.
const (
	SchemeBasic  = "Basic"
	SchemeBearer = "Bearer"
)

// ExtractToken returns the credential part of "<scheme> <token>".
// The header must contain exactly one space and the scheme must match
// case-sensitively.
func ExtractToken(header, scheme string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != scheme {
		return "", domain.ErrInvalidHeaderFormat
	}
	return parts[1], nil
}

// DecodeBasicToken decodes base64("email:password").
func DecodeBasicToken(token string) (domain.Credentials, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return domain.Credentials{}, domain.ErrInvalidHeaderFormat
	}

	split := strings.Split(string(decoded), ":")
	if len(split) != 2 {
		return domain.Credentials{}, domain.ErrInvalidHeaderFormat
	}

	return domain.Credentials{Email: split[0], Password: split[1]}, nil
}

// EncodeBasicToken is the inverse of DecodeBasicToken.
func EncodeBasicToken(email, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
}
