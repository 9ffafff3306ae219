package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPostCreated       EventType = "post_created"
	EventPostDeleted       EventType = "post_deleted"
	EventPostStatusChanged EventType = "post_status_changed"
	EventUserStatusChanged EventType = "user_status_changed"
	EventUserDeleted       EventType = "user_deleted"
	EventCategoryCreated   EventType = "category_created"
	EventCategoryRenamed   EventType = "category_renamed"
	EventCategoryDeleted   EventType = "category_deleted"
)

// AllEventTypes lists every event a service may publish.
var AllEventTypes = []EventType{
	EventPostCreated,
	EventPostDeleted,
	EventPostStatusChanged,
	EventUserStatusChanged,
	EventUserDeleted,
	EventCategoryCreated,
	EventCategoryRenamed,
	EventCategoryDeleted,
}

// Actor identifies who triggered an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID string, actor *domain.User, payload interface{}) Event {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = Actor{UserID: actor.ID, Role: actor.Role}
	}
	return event
}

// PostCreatedPayload payload.
type PostCreatedPayload struct {
	Title       string            `json:"title"`
	Status      domain.PostStatus `json:"status"`
	CategoryIDs []string          `json:"category_ids"`
}

// PostDeletedPayload payload.
type PostDeletedPayload struct {
	AuthorID string `json:"author_id"`
}

// PostStatusChangedPayload payload.
type PostStatusChangedPayload struct {
	OldStatus domain.PostStatus `json:"old_status"`
	NewStatus domain.PostStatus `json:"new_status"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	OldStatus domain.AccountStatus `json:"old_status"`
	NewStatus domain.AccountStatus `json:"new_status"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Username string `json:"username"`
}

// CategoryPayload carries category name changes.
type CategoryPayload struct {
	Name      string `json:"name"`
	OldName   string `json:"old_name,omitempty"`
	PostCount int    `json:"post_count,omitempty"`
}
