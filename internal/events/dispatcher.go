package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans domain events out to subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
	// SubscribeAll registers a handler that receives every event type.
	SubscribeAll(handler EventHandler)
}

type inMemoryDispatcher struct {
	mu       sync.RWMutex
	byType   map[EventType][]EventHandler
	wildcard []EventHandler
}

// NewInMemoryDispatcher returns a synchronous dispatcher.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{byType: make(map[EventType][]EventHandler)}
}

// Publish runs the handlers for event.Type, then the wildcard handlers, on the
// calling goroutine. Every handler runs even when an earlier one fails or
// panics; failures come back joined.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]EventHandler, 0, len(d.byType[event.Type])+len(d.wildcard))
	handlers = append(handlers, d.byType[event.Type]...)
	handlers = append(handlers, d.wildcard...)
	d.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := deliver(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byType[eventType] = append(d.byType[eventType], handler)
}

func (d *inMemoryDispatcher) SubscribeAll(handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wildcard = append(d.wildcard, handler)
}

func deliver(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler for %s panicked: %v", event.Type, r)
		}
	}()
	return handler(ctx, event)
}
