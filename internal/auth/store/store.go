package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, redis)
// implement this and expose sub-repositories so each concern stays small and
// testable.
type Store interface {
	Clients() Clients

	// ApplyMigrations brings the schema up to date. Drivers without a schema
	// treat it as a no-op.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backend is still reachable.
	Ping(ctx context.Context) error
}

// Clients is the client credentials store: a lookup of registered clients by
// id, plus the administrative writes that create them.
type Clients interface {
	// GetClientByID returns ErrNotFound when the id is unknown.
	GetClientByID(ctx context.Context, id domain.ClientID) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client. Returns ErrAlreadyExists when the id
	// is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// UpsertClients writes every record as given, inserting or replacing by
	// id. The batch is applied atomically.
	UpsertClients(ctx context.Context, clients ...domain.Client) error

	// DeleteClient returns ErrNotFound when the id is unknown.
	DeleteClient(ctx context.Context, id domain.ClientID) error

	// IsEmpty returns true if there are no clients.
	IsEmpty(ctx context.Context) (bool, error)
}
