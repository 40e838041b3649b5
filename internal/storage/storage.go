package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/campaign-engine/pkg/state"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the backing store connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the backing store connection
	Close() error
}

// Storage defines the interface for session persistence
type Storage interface {
	HealthChecker
	Closer

	// SaveSession saves a session state under its ID
	SaveSession(ctx context.Context, id uuid.UUID, ss *state.SessionState) error

	// LoadSession retrieves a session state by ID.
	// Returns nil if the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*state.SessionState, error)

	// DeleteSession removes a session state by ID
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
