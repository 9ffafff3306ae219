package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreDriverMemory)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "innerplog", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.Equal(t, 60*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", StoreDriverPostgres)
	t.Setenv("POSTGRES_DSN", "postgres://localhost/blog")
	t.Setenv("POSTGRES_MAX_CONNS", "4")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int32(4), cfg.Postgres.MaxConns)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
}

func TestValidate(t *testing.T) {
	base := Config{
		Store: StoreConfig{Driver: StoreDriverMemory},
		Auth:  AuthConfig{JWTSecret: "s", AccessTokenTTLMinutes: 60},
	}
	require.NoError(t, base.Validate())

	noDSN := base
	noDSN.Store.Driver = StoreDriverPostgres
	assert.ErrorContains(t, noDSN.Validate(), "POSTGRES_DSN")

	unknown := base
	unknown.Store.Driver = "mysql"
	assert.ErrorContains(t, unknown.Validate(), "unknown STORE_DRIVER")

	noSecret := base
	noSecret.Auth.JWTSecret = " "
	assert.ErrorContains(t, noSecret.Validate(), "AUTH_JWT_SECRET")
}

func TestRequestTimeout_Disabled(t *testing.T) {
	assert.Zero(t, AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}
