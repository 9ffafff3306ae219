package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository/memory"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)

	token, err := tm.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token.ID)
	assert.Equal(t, time.Minute, token.ExpiresAt.Sub(token.IssuedAt))

	claims, err := tm.Parse(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, token.ID, claims.ID)
}

func TestTokenManager_RejectsExpiredAndForeign(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	token, err := tm.Issue("user-1")
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.Parse(token.Value)
	assert.Error(t, err)

	other := NewTokenManager("other-secret", time.Minute)
	_, err = other.Parse(token.Value)
	assert.Error(t, err)
}

func TestPassword_HashAndCompare(t *testing.T) {
	hash, err := HashPassword("Str0ngPass", 4)
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "Str0ngPass"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
}

type fixture struct {
	app    *fiber.App
	store  *memory.Store
	tokens *TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tokens := NewTokenManager("secret", time.Hour)
	mw := NewAuthMiddleware(tokens, store.Users(), store.Revocations())

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Message)
	}})
	app.Get("/me", mw.Handle, RequireUser(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.User.Username)
	})
	app.Get("/admin", mw.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return &fixture{app: app, store: store, tokens: tokens}
}

func (f *fixture) user(t *testing.T, name string, role domain.UserRole, status domain.AccountStatus) string {
	t.Helper()
	u := &domain.User{Username: name, Email: name + "@example.com", Role: role, Status: status}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	token, err := f.tokens.Issue(u.ID)
	require.NoError(t, err)
	return token.Value
}

func (f *fixture) get(t *testing.T, path, bearer string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	f := newFixture(t)
	writer := f.user(t, "writer", domain.UserRoleWriter, domain.AccountStatusActive)
	admin := f.user(t, "admin", domain.UserRoleAdmin, domain.AccountStatusActive)
	banned := f.user(t, "banned", domain.UserRoleWriter, domain.AccountStatusBanned)

	status, body := f.get(t, "/me", writer)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "writer", body)

	status, body = f.get(t, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Not authenticated", body)

	status, _ = f.get(t, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = f.get(t, "/me", banned)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Account has been banned", body)

	status, body = f.get(t, "/admin", writer)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Admin privileges required", body)

	status, _ = f.get(t, "/admin", admin)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	f := newFixture(t)
	token := f.user(t, "writer", domain.UserRoleWriter, domain.AccountStatusActive)
	claims, err := f.tokens.Parse(token)
	require.NoError(t, err)

	require.NoError(t, f.store.Revocations().Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	status, body := f.get(t, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token has been revoked", body)
}
