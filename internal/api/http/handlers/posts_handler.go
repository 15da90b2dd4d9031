package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// PostsHandler manages blog post endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// List GET /posts.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.posts.ListPosts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponses(posts)})
}

// Get GET /posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	post, err := h.posts.GetPost(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Create POST /posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	post, err := h.posts.CreatePost(c.UserContext(), principal.User, req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Update PATCH /posts/:id.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := postID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	post, err := h.posts.UpdatePost(c.UserContext(), principal.User.ID, id, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPostResponse(post)})
}

// Delete DELETE /posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	id, err := postID(c)
	if err != nil {
		return err
	}
	if err := h.posts.DeletePost(c.UserContext(), principal.User.ID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id}})
}

func postID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.NewValidationError("invalid post id", map[string]any{"id": id})
	}
	return parsed.String(), nil
}
