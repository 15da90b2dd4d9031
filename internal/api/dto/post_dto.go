package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest is the body of PATCH /posts/:id. Omitted fields are kept.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=200"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

// Patch converts the request to a domain patch.
func (r UpdatePostRequest) Patch() domain.PostPatch {
	return domain.PostPatch{Title: r.Title, Content: r.Content}
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	LikeCount    int            `json:"likeCount"`
	CommentCount int            `json:"commentCount"`
	Author       *AuthorSummary `json:"author,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func NewPostResponse(p *domain.Post) PostResponse {
	resp := PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Author != nil {
		resp.Author = &AuthorSummary{ID: p.Author.ID, Nickname: p.Author.Nickname}
	}
	return resp
}

func NewPostResponses(posts []*domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}
