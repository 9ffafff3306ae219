package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/validation"
)

// CategoriesHandler serves the public taxonomy and its admin management.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categoryService *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categoryService}
}

// ListCategories GET /categories.
func (h *CategoriesHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponses(categories)})
}

// GetCategory GET /categories/:id.
func (h *CategoriesHandler) GetCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	category, err := h.categories.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": categoryResponse(*category)})
}

// CreateCategory POST /admin/categories.
func (h *CategoriesHandler) CreateCategory(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	name, err := categoryName(c)
	if err != nil {
		return err
	}
	category, err := h.categories.Create(c.UserContext(), actor, name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": categoryResponse(*category)})
}

// RenameCategory PUT /admin/categories/:id.
func (h *CategoriesHandler) RenameCategory(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	name, err := categoryName(c)
	if err != nil {
		return err
	}
	result, err := h.categories.Rename(c.UserContext(), actor, id, name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CategoryRenameResponse{
		CategoryResponse: categoryResponse(result.Category),
		Warning:          result.Warning,
	}})
}

// DeleteCategory DELETE /admin/categories/:id.
func (h *CategoriesHandler) DeleteCategory(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func categoryName(c *fiber.Ctx) (string, error) {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return "", err
	}
	var v validation.Collector
	name := validation.Check(&v, "name", req.Name, validation.CategoryName())
	return name, v.Err()
}
