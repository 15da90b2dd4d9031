package domain

import "time"

// Post is a blog entry written by a single user.
type Post struct {
	ID           string
	AuthorID     string
	Author       *User
	Title        string
	Content      string
	LikeCount    int
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PostPatch carries optional post field updates. Nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
}
