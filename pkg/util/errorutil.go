package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts sentinel and generic errors to DomainError.
// Unknown email and wrong password share one code and message so callers
// cannot probe which addresses are registered.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidHeaderFormat):
		return &DomainError{Code: "INVALID_HEADER", Message: "invalid authorization header", HTTPStatus: http.StatusUnauthorized, Err: err}
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		return &DomainError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password", HTTPStatus: http.StatusUnauthorized, Err: err}
	case errors.Is(err, domain.ErrTokenExpired):
		return &DomainError{Code: "TOKEN_EXPIRED", Message: "token expired", HTTPStatus: http.StatusUnauthorized, Err: err}
	case errors.Is(err, domain.ErrTokenInvalid):
		return &DomainError{Code: "TOKEN_INVALID", Message: "token invalid", HTTPStatus: http.StatusUnauthorized, Err: err}
	case errors.Is(err, domain.ErrWrongTokenKind):
		return &DomainError{Code: "WRONG_TOKEN_KIND", Message: "token kind not accepted", HTTPStatus: http.StatusUnauthorized, Err: err}
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		de := &DomainError{Code: "DUPLICATE_IDENTIFIER", Message: "identifier already registered", HTTPStatus: http.StatusBadRequest, Err: err}
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			de.Message = dup.Error()
			de.Details = map[string]any{"field": dup.Field}
		}
		return de
	case errors.Is(err, domain.ErrPostNotFound):
		return &DomainError{Code: "NOT_FOUND", Message: "post not found", HTTPStatus: http.StatusNotFound, Err: err}
	case errors.Is(err, domain.ErrForbidden):
		return &DomainError{Code: "FORBIDDEN", Message: "forbidden", HTTPStatus: http.StatusForbidden, Err: err}
	case errors.Is(err, pgx.ErrNoRows):
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}

	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
