package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// UserResponse is the public view of a user. It never carries the hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorSummary is embedded in post responses.
type AuthorSummary struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Nickname:  u.Nickname,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
