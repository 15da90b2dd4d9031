package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"header", domain.ErrInvalidHeaderFormat, "INVALID_HEADER", http.StatusUnauthorized},
		{"unknown user", domain.ErrUserNotFound, "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"wrong password", domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"expired", fmt.Errorf("verify: %w", domain.ErrTokenExpired), "TOKEN_EXPIRED", http.StatusUnauthorized},
		{"invalid", domain.ErrTokenInvalid, "TOKEN_INVALID", http.StatusUnauthorized},
		{"wrong kind", domain.ErrWrongTokenKind, "WRONG_TOKEN_KIND", http.StatusUnauthorized},
		{"duplicate", domain.ErrDuplicateIdentifier, "DUPLICATE_IDENTIFIER", http.StatusBadRequest},
		{"post missing", domain.ErrPostNotFound, "NOT_FOUND", http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, "FORBIDDEN", http.StatusForbidden},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			require.NotNil(t, de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestToDomainError_EnumerationSafe(t *testing.T) {
	notFound := ToDomainError(domain.ErrUserNotFound)
	mismatch := ToDomainError(domain.ErrInvalidCredentials)

	assert.Equal(t, notFound.Code, mismatch.Code)
	assert.Equal(t, notFound.Message, mismatch.Message)
}

func TestToDomainError_DuplicateField(t *testing.T) {
	de := ToDomainError(&domain.DuplicateError{Field: "nickname"})

	assert.Equal(t, "DUPLICATE_IDENTIFIER", de.Code)
	assert.Equal(t, "nickname already registered", de.Message)
	assert.Equal(t, map[string]any{"field": "nickname"}, de.Details)
}

func TestToDomainError_PassesThrough(t *testing.T) {
	orig := NewDomainError("CUSTOM", "custom", http.StatusTeapot, nil)

	assert.Same(t, orig, ToDomainError(fmt.Errorf("wrapped: %w", orig)))
	assert.Nil(t, ToDomainError(nil))
}
