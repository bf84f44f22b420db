// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the outer surfaces (CLI) call into.
package primary

import (
	"context"
	"time"

	"github.com/example/crm/internal/core/client"
)

// ClientService defines the primary port for client record operations.
type ClientService interface {
	// CreateClient validates fields and stores a new client.
	CreateClient(ctx context.Context, fields client.Fields) (*client.Client, error)

	// GetClient retrieves a client by ID. Returns nil, nil if absent.
	GetClient(ctx context.Context, clientID string) (*client.Client, error)

	// ListClients lists clients in insertion order with optional filters.
	ListClients(ctx context.Context, filters ClientFilters) ([]*client.Client, error)

	// UpdateClient validates the patched record and stores it.
	// Returns nil, nil if the client is absent.
	UpdateClient(ctx context.Context, clientID string, patch client.Patch) (*client.Client, error)

	// DeleteClient hard-deletes a client. Reports false if it was absent.
	DeleteClient(ctx context.Context, clientID string) (bool, error)

	// ValidateClient checks a whole candidate record.
	ValidateClient(fields client.Fields) client.GuardResult

	// ValidateField checks the rules attached to a single field.
	ValidateField(field client.Field, fields client.Fields) client.GuardResult

	// Summary counts clients in total and per status.
	Summary(ctx context.Context) (*ClientSummary, error)
}

// ClientFilters contains filter options for listing clients.
type ClientFilters struct {
	Status client.Status // StatusUnset means any
	Search string        // case-insensitive match on name or email
}

// ClientSummary is the dashboard view of the collection.
type ClientSummary struct {
	Total    int
	ByStatus map[client.Status]int
	// RecentlyUpdated holds the most recently changed clients, newest first.
	RecentlyUpdated []*client.Client
	// ExpiringSoon lists clients whose status expires within ExpiryWindow
	// from today, soonest first.
	ExpiringSoon []*client.Client
	ExpiryWindow time.Duration
}
