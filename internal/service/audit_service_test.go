package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
)

func TestAuditService_LogsEveryEventType(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	actor := &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}
	for _, eventType := range events.AllEventTypes {
		require.NoError(t, dispatcher.Publish(context.Background(), events.New(eventType, "subject", actor, nil)))
	}

	entries := logs.All()
	require.Len(t, entries, len(events.AllEventTypes))
	assert.Equal(t, string(events.EventPostCreated), entries[0].Message)
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.Equal(t, "admin-1", entries[0].ContextMap()["actor_id"])
}
