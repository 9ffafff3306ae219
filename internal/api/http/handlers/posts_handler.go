package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/validation"
)

const (
	defaultPostPageSize = 10
	maxPostPageSize     = 100
)

// PostsHandler exposes post authoring and reading endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{posts: postService}
}

// CreatePost POST /posts.
func (h *PostsHandler) CreatePost(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.PostCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var v validation.Collector
	input := service.PostCreateInput{
		Title:       validation.Check(&v, "title", req.Title, validation.Title()),
		Content:     validation.Check(&v, "content", req.Content, validation.Content()),
		Tags:        validation.Check(&v, "tags", req.Tags, validation.Tags()),
		CategoryIDs: validation.Check(&v, "category_ids", req.CategoryIDs, validation.IDs()),
	}
	if status := validation.CheckOptional(&v, "status", req.Status, validation.AuthorPostStatus()); status != nil {
		input.Status = *status
	}
	if err := v.Err(); err != nil {
		return err
	}

	post, err := h.posts.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": postResponse(post)})
}

// ListPosts GET /posts.
func (h *PostsHandler) ListPosts(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var v validation.Collector
	query := service.PostListQuery{
		Page:     queryInt(&v, c, "page", 1, validation.Page()),
		PageSize: queryInt(&v, c, "page_size", defaultPostPageSize, validation.PageSize(maxPostPageSize)),
		Tag:      optionalQuery(c, "tag"),
	}
	if raw := optionalQuery(c, "status"); raw != nil {
		status := domain.PostStatus(*raw)
		query.Status = validation.CheckOptional(&v, "status", &status, validation.PostStatus())
	}
	query.AuthorID = validation.CheckOptional(&v, "author_id", optionalQuery(c, "author_id"), validation.ID())
	if err := v.Err(); err != nil {
		return err
	}

	page, err := h.posts.List(c.UserContext(), actor, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listResponse(page, postResponse)})
}

// GetPost GET /posts/:id.
func (h *PostsHandler) GetPost(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	post, err := h.posts.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponse(post)})
}

// UpdatePost PUT /posts/:id.
func (h *PostsHandler) UpdatePost(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PostUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var v validation.Collector
	input := service.PostUpdateInput{
		Title:       validation.CheckOptional(&v, "title", req.Title, validation.Title()),
		Content:     validation.CheckOptional(&v, "content", req.Content, validation.Content()),
		Status:      validation.CheckOptional(&v, "status", req.Status, validation.AuthorPostStatus()),
		Tags:        validation.CheckOptional(&v, "tags", req.Tags, validation.Tags()),
		CategoryIDs: validation.CheckOptional(&v, "category_ids", req.CategoryIDs, validation.IDs()),
	}
	if err := v.Err(); err != nil {
		return err
	}

	post, err := h.posts.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponse(post)})
}

// DeletePost DELETE /posts/:id.
func (h *PostsHandler) DeletePost(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
