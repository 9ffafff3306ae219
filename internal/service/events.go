package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/events"
)

// publisher wraps the dispatcher so that a failing audit subscriber never
// fails the operation that emitted the event.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger}
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
