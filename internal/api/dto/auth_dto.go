package dto

// RegisterEmailRequest is the body of POST /auth/register/email.
type RegisterEmailRequest struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=3,max=8,excludes=:"`
}

// TokenPairResponse is returned by login and registration.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenResponse is returned by POST /auth/token/access.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// RefreshTokenResponse is returned by POST /auth/token/refresh.
type RefreshTokenResponse struct {
	RefreshToken string `json:"refreshToken"`
}
