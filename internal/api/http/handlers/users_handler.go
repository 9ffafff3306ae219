package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/validation"
)

// UsersHandler serves the caller's own profile.
type UsersHandler struct {
	users *service.UserService
	now   func() time.Time
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService, now: time.Now}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.users.Profile(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// UpdateMe handles PUT /users/me.
func (h *UsersHandler) UpdateMe(c *fiber.Ctx) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var v validation.Collector
	input := service.ProfileUpdateInput{
		Email:       validation.CheckOptional(&v, "email", req.Email, validation.Email()),
		Fullname:    validation.CheckOptional(&v, "fullname", req.Fullname, validation.Fullname()),
		DOB:         dateOfBirth(&v, req.DOB, h.now),
		Description: validation.CheckOptional(&v, "description", req.Description, validation.Description()),
	}
	if err := v.Err(); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}
