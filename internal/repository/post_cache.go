package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
)

const postCachePrefix = "posts:"

// cachedPost is the redis representation of a post. It never carries the
// author's password hash.
type cachedPost struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	AuthorEmail    string    `json:"author_email"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	LikeCount      int       `json:"like_count"`
	CommentCount   int       `json:"comment_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type cachedPostRepository struct {
	PostRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedPostRepository wraps next with a redis read-through cache for
// GetByID. Redis failures are logged and fall through to next.
func NewCachedPostRepository(next PostRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) PostRepository {
	if client == nil {
		return next
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &cachedPostRepository{PostRepository: next, client: client, ttl: ttl, logger: logger}
}

// canonicalPostID lowercases and hyphenates UUIDs so every spelling of an id
// shares one cache key.
func canonicalPostID(id string) string {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}

func (r *cachedPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	id = canonicalPostID(id)
	key := postCachePrefix + id

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cp cachedPost
		if jsonErr := json.Unmarshal(raw, &cp); jsonErr == nil {
			return cp.toDomain(), nil
		}
		r.logger.Warn("discarding unreadable cached post", zap.String("post_id", id))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("post cache read failed", zap.String("post_id", id), zap.Error(err))
	}

	post, err := r.PostRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(fromDomain(post)); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("post cache write failed", zap.String("post_id", id), zap.Error(err))
		}
	}
	return post, nil
}

func (r *cachedPostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	id = canonicalPostID(id)
	post, err := r.PostRepository.Update(ctx, id, patch)
	r.evict(ctx, id)
	return post, err
}

func (r *cachedPostRepository) Delete(ctx context.Context, id string) error {
	id = canonicalPostID(id)
	err := r.PostRepository.Delete(ctx, id)
	r.evict(ctx, id)
	return err
}

func (r *cachedPostRepository) evict(ctx context.Context, id string) {
	if err := r.client.Del(ctx, postCachePrefix+id).Err(); err != nil {
		r.logger.Warn("post cache evict failed", zap.String("post_id", id), zap.Error(err))
	}
}

func fromDomain(p *domain.Post) cachedPost {
	cp := cachedPost{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Title:        p.Title,
		Content:      p.Content,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Author != nil {
		cp.AuthorNickname = p.Author.Nickname
		cp.AuthorEmail = p.Author.Email
	}
	return cp
}

func (cp cachedPost) toDomain() *domain.Post {
	return &domain.Post{
		ID:       cp.ID,
		AuthorID: cp.AuthorID,
		Author: &domain.User{
			ID:       cp.AuthorID,
			Nickname: cp.AuthorNickname,
			Email:    cp.AuthorEmail,
		},
		Title:        cp.Title,
		Content:      cp.Content,
		LikeCount:    cp.LikeCount,
		CommentCount: cp.CommentCount,
		CreatedAt:    cp.CreatedAt,
		UpdatedAt:    cp.UpdatedAt,
	}
}
