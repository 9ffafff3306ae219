package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/policy"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// RequireUser ensures a caller has been authenticated.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("Not authenticated")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Not authenticated")
		}
		if !policy.CanModerate(principal.User) {
			return apperrors.NewForbidden("Admin privileges required")
		}
		return c.Next()
	}
}
