package service

import (
	"context"
	"time"
)

// Identity event types emitted after user directory changes
const (
	IdentityEventRegistered  = "user.registered"
	IdentityEventProvisioned = "user.provisioned"
	IdentityEventLinked      = "user.linked"
	IdentityEventSynced      = "user.synced"
	IdentityEventDeactivated = "user.deactivated"
)

// IdentityEvent describes a change to a canonical user record
type IdentityEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	ExternalID string    `json:"external_id,omitempty"`
	Source     string    `json:"source"` // "register", "reconcile" or "webhook"
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishIdentityEvent publishes an identity event for downstream consumers
	PublishIdentityEvent(ctx context.Context, event *IdentityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
