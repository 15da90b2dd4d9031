package domain

// TokenKind distinguishes access from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Valid reports whether k is a known token kind.
func (k TokenKind) Valid() bool {
	return k == TokenKindAccess || k == TokenKindRefresh
}

// Credentials are the email/password pair decoded from a Basic header.
type Credentials struct {
	Email    string
	Password string
}

// TokenPayload is the identity embedded in a signed token.
type TokenPayload struct {
	SubjectID string
	Email     string
	Kind      TokenKind
}

// TokenPair is returned after login or registration.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
