package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{Name: "innerplog", Version: "test"},
		Store: config.StoreConfig{Driver: config.StoreDriverMemory},
		Auth:  config.AuthConfig{JWTSecret: "s", AccessTokenTTLMinutes: 5, BcryptCost: 4},
	}
}

func TestOpenStores_Memory(t *testing.T) {
	s, err := openStores(context.Background(), memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.users)
	assert.NotNil(t, s.revocations)
	assert.Nil(t, s.postgres)
	assert.Nil(t, s.redis)
}

func TestOpenStores_UnknownDriver(t *testing.T) {
	c := memoryConfig()
	c.Store.Driver = "sqlite"
	_, err := openStores(context.Background(), c, zap.NewNop())
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewHTTPApp_ServesRoot(t *testing.T) {
	c := memoryConfig()
	s, err := openStores(context.Background(), c, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	app := newHTTPApp(c, s, buildServices(c, s, zap.NewNop()), zap.NewNop())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
