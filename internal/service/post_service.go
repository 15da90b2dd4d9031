package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
)

// PostService implements post CRUD with author ownership checks.
type PostService struct {
	posts      repository.PostRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPostService builds the service.
func NewPostService(posts repository.PostRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{posts: posts, dispatcher: dispatcher, logger: logger}
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// GetPost returns a single post.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// CreatePost stores a new post authored by author.
func (s *PostService) CreatePost(ctx context.Context, author *domain.User, title, content string) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID: author.ID,
		Title:    title,
		Content:  content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	post.Author = &domain.User{ID: author.ID, Nickname: author.Nickname, Email: author.Email}

	publish(ctx, s.dispatcher, s.logger, events.EventPostCreated, author.ID,
		events.PostPayload{PostID: post.ID, Title: post.Title})
	return post, nil
}

// UpdatePost applies patch when actorID authored the post.
func (s *PostService) UpdatePost(ctx context.Context, actorID, id string, patch domain.PostPatch) (*domain.Post, error) {
	if err := s.authorize(ctx, actorID, id); err != nil {
		return nil, err
	}
	post, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.EventPostUpdated, actorID,
		events.PostPayload{PostID: post.ID, Title: post.Title})
	return post, nil
}

// DeletePost removes the post when actorID authored it.
func (s *PostService) DeletePost(ctx context.Context, actorID, id string) error {
	if err := s.authorize(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.dispatcher, s.logger, events.EventPostDeleted, actorID, events.PostPayload{PostID: id})
	return nil
}

func (s *PostService) authorize(ctx context.Context, actorID, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return domain.ErrForbidden
	}
	return nil
}
