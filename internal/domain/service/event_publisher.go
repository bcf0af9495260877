package service

import (
	"context"
	"time"
)

// Member event types.
const (
	EventUserRegistered     = "user.registered"
	EventEarthCharterSigned = "user.earth_charter_signed"
	EventUserDeleted        = "user.deleted"
)

// MemberEvent announces a change in membership to downstream consumers
type MemberEvent struct {
	ID                   string    `json:"id"`
	Type                 string    `json:"type"`
	RequestID            string    `json:"request_id,omitempty"` // For distributed tracing
	UserID               string    `json:"user_id"`
	GenerationalIdentity string    `json:"generational_identity,omitempty"`
	HasLocation          bool      `json:"has_location"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMemberEvent delivers one event; it returns once the broker accepted it
	PublishMemberEvent(ctx context.Context, event *MemberEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
