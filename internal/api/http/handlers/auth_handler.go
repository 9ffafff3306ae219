package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/validation"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
	now  func() time.Time
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService, now: time.Now}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var v validation.Collector
	input := service.RegisterInput{
		Username:    validation.Check(&v, "username", req.Username, validation.Username()),
		Email:       validation.Check(&v, "email", req.Email, validation.Email()),
		Password:    validation.Check(&v, "password", req.Password, validation.Password()),
		Fullname:    validation.CheckOptional(&v, "fullname", req.Fullname, validation.Fullname()),
		DOB:         dateOfBirth(&v, req.DOB, h.now),
		Description: validation.CheckOptional(&v, "description", req.Description, validation.Description()),
	}
	if err := v.Err(); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// Login handles POST /auth/login with a JSON or form-encoded body.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	var v validation.Collector
	validation.Check(&v, "username", req.Username, validation.NotBlank("Username is required"))
	validation.Check(&v, "password", req.Password, validation.NotBlank("Password is required"))
	if err := v.Err(); err != nil {
		return err
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{
		AccessToken: token.Value,
		TokenType:   "bearer",
		ExpiresAt:   token.ExpiresAt,
	}})
}

// Logout handles POST /auth/logout by revoking the presented token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	if err := h.auth.Logout(c.UserContext(), principal.Claims); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
