package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
)

type memoryPostRepository struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
	users UserRepository
}

// NewMemoryPostRepository returns a process-local PostRepository resolving
// authors through users.
func NewMemoryPostRepository(users UserRepository) PostRepository {
	return &memoryPostRepository{
		posts: make(map[string]*domain.Post),
		users: users,
	}
}

func (r *memoryPostRepository) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	post.ID = uuid.NewString()
	post.LikeCount = 0
	post.CommentCount = 0
	post.CreatedAt = now
	post.UpdatedAt = now

	stored := *post
	stored.Author = nil
	r.posts[post.ID] = &stored
	return nil
}

func (r *memoryPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	post, ok := r.posts[id]
	var out domain.Post
	if ok {
		out = *post
	}
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if err := r.attachAuthor(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memoryPostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	posts := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out := *p
		posts = append(posts, &out)
	}
	r.mu.RUnlock()

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
	for _, p := range posts {
		if err := r.attachAuthor(ctx, p); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (r *memoryPostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	r.mu.Lock()
	post, ok := r.posts[id]
	if ok {
		if patch.Title != nil {
			post.Title = *patch.Title
		}
		if patch.Content != nil {
			post.Content = *patch.Content
		}
		post.UpdatedAt = time.Now().UTC()
	}
	r.mu.Unlock()

	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memoryPostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryPostRepository) attachAuthor(ctx context.Context, post *domain.Post) error {
	author, err := r.users.GetByID(ctx, post.AuthorID)
	if err != nil {
		return err
	}
	author.PasswordHash = ""
	post.Author = author
	return nil
}
