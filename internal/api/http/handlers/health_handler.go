package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/observability"
	"github.com/spec-kit/blog-service/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance. A nil postgres or redis
// means the dependency is not in use and is reported as disabled.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis, metrics: metrics}
}

// Root reports basic application status.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.serviceName,
		"version": h.version,
		"status":  "running",
	})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	check := func(name string, enabled bool, ping func(context.Context) error) {
		if !enabled {
			depStatus[name] = "disabled"
			return
		}
		if err := ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			return
		}
		depStatus[name] = "ok"
	}
	check("postgres", h.postgres != nil, h.postgres.Ping)
	check("redis", h.redis != nil, h.redis.Ping)

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}

// Metrics exposes the in-memory request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
