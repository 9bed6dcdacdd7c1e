package services

import (
	"context"
	"io"

	"teampulse/internal/core/domain"
)

// EventPublisher hands domain events to other systems
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// AvatarStore keeps uploaded avatar images and returns their public URL
type AvatarStore interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) error { return nil }
func (NoopPublisher) Close() error { return nil }
