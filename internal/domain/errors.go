package domain

import "errors"

// Authentication failures.
var (
	ErrInvalidHeaderFormat = errors.New("invalid authorization header format")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrWrongTokenKind      = errors.New("wrong token kind")
)

// ErrDuplicateIdentifier is returned by user stores when the email or
// nickname is already taken.
var ErrDuplicateIdentifier = errors.New("identifier already registered")

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("forbidden")
)

// DuplicateError names the field that collided with an existing user.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already registered"
}

// Is lets errors.Is match ErrDuplicateIdentifier.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}
