package domain

import "time"

// User is the domain model for registered blog authors.
type User struct {
	ID           string
	Nickname     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
