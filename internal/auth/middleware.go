package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens      *TokenManager
	users       repository.UserRepository
	revocations repository.RevocationRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, revocations repository.RevocationRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revocations: revocations}
}

// Handle enforces authentication for protected routes. Banned accounts are
// refused even when the token itself is valid.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return unauthorized(c, "Not authenticated")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return unauthorized(c, "Not authenticated")
	}

	claims, err := m.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return unauthorized(c, "Could not validate credentials")
	}

	ctx := c.UserContext()
	if m.revocations != nil && claims.ID != "" {
		revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if revoked {
			return unauthorized(c, "Token has been revoked")
		}
	}

	user, err := m.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c, "Could not validate credentials")
		}
		return apperrors.MapError(err)
	}
	if user.IsBanned() {
		return apperrors.NewForbidden("Account has been banned")
	}

	c.Locals(principalKey, &Principal{User: user, Claims: claims})
	return c.Next()
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return apperrors.NewUnauthorized(message)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.User != nil
}
