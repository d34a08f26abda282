package core

import (
	"context"
)

// Provider represents an event source (Eventbrite organization, etc).
type Provider interface {
	// ID returns the unique identifier of the source (e.g. "eventbrite")
	ID() string
	// Name returns a human-readable label (e.g. "Eventbrite")
	Name() string
	// FetchEvents retrieves the normalized events of the source.
	// Records that cannot be normalized are dropped, not reported.
	// This should block until done or context is cancelled.
	FetchEvents(ctx context.Context) ([]Event, error)
}
