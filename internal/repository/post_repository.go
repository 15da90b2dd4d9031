package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/spec-kit/blog-service/internal/domain"
)

// PostRepository defines persistence access for posts. Reads return posts
// with Author populated (without password hash).
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db DBTX
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(db DBTX) PostRepository {
	return &postRepository{db: db}
}

const selectPostWithAuthor = `
        SELECT p.id, p.author_id, p.title, p.content, p.like_count, p.comment_count,
               p.created_at, p.updated_at, u.nickname, u.email
        FROM posts p
        JOIN users u ON u.id = p.author_id`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (author_id, title, content)
        VALUES ($1, $2, $3)
        RETURNING id, like_count, comment_count, created_at, updated_at`

	if err := r.db.QueryRow(ctx, query,
		post.AuthorID,
		post.Title,
		post.Content,
	).Scan(&post.ID, &post.LikeCount, &post.CommentCount, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return oops.With("operation", "create post").Wrap(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	row := r.db.QueryRow(ctx, selectPostWithAuthor+` WHERE p.id=$1`, id)
	post, err := scanPost(row)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, oops.With("operation", "get post").Wrap(err)
	}
	return post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.Query(ctx, selectPostWithAuthor+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, oops.With("operation", "list posts").Wrap(err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, oops.With("operation", "scan post").Wrap(err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "list posts").Wrap(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	const query = `
        UPDATE posts SET title=COALESCE($1, title), content=COALESCE($2, content), updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.db.Exec(ctx, query, patch.Title, patch.Content, id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, oops.With("operation", "update post").Wrap(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrPostNotFound
		}
		return oops.With("operation", "delete post").Wrap(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var (
		post   domain.Post
		author domain.User
	)
	if err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Content,
		&post.LikeCount,
		&post.CommentCount,
		&post.CreatedAt,
		&post.UpdatedAt,
		&author.Nickname,
		&author.Email,
	); err != nil {
		return nil, err
	}
	author.ID = post.AuthorID
	post.Author = &author
	return &post, nil
}
