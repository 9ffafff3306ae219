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
	defaultUserPageSize = 50
	maxUserPageSize     = 200
)

// AdminHandler exposes moderation endpoints. Routes must be mounted behind
// auth.RequireAdmin.
type AdminHandler struct {
	moderation *service.ModerationService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(moderationService *service.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderationService}
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var v validation.Collector
	page := queryInt(&v, c, "page", 1, validation.Page())
	pageSize := queryInt(&v, c, "page_size", defaultUserPageSize, validation.PageSize(maxUserPageSize))
	if err := v.Err(); err != nil {
		return err
	}

	users, err := h.moderation.ListUsers(c.UserContext(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listResponse(users, userResponse)})
}

// SetUserStatus PATCH /admin/users/:id/status.
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.AccountStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	var v validation.Collector
	status := validation.Check(&v, "account_status", req.AccountStatus, validation.AccountStatus())
	if err := v.Err(); err != nil {
		return err
	}

	user, err := h.moderation.SetUserStatus(c.UserContext(), actor, id, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.moderation.DeleteUser(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListPosts GET /admin/posts.
func (h *AdminHandler) ListPosts(c *fiber.Ctx) error {
	var v validation.Collector
	query := service.AdminPostListQuery{
		Page:     queryInt(&v, c, "page", 1, validation.Page()),
		PageSize: queryInt(&v, c, "page_size", defaultPostPageSize, validation.PageSize(maxPostPageSize)),
	}
	if raw := optionalQuery(c, "status"); raw != nil {
		status := domain.PostStatus(*raw)
		query.Status = validation.CheckOptional(&v, "status", &status, validation.PostStatus())
	}
	if err := v.Err(); err != nil {
		return err
	}

	posts, err := h.moderation.ListPosts(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listResponse(posts, postResponse)})
}

// SetPostStatus PATCH /admin/posts/:id/status.
func (h *AdminHandler) SetPostStatus(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PostStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	var v validation.Collector
	status := validation.Check(&v, "status", req.Status, validation.PostStatus())
	if err := v.Err(); err != nil {
		return err
	}

	post, err := h.moderation.SetPostStatus(c.UserContext(), actor, id, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postResponse(post)})
}
