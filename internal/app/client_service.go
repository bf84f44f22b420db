package app

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/example/crm/internal/core/client"
	"github.com/example/crm/internal/observability"
	"github.com/example/crm/internal/ports/primary"
)

const (
	recentLimit      = 5
	expiryWindowDays = 90
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	store  *ClientStore
	now    func() time.Time
	logger *slog.Logger
}

// NewClientService creates a new ClientService with injected dependencies.
// A nil logger discards output.
func NewClientService(store *ClientStore, logger *slog.Logger) *ClientServiceImpl {
	if logger == nil {
		logger = observability.Discard()
	}
	return &ClientServiceImpl{
		store:  store,
		now:    store.now,
		logger: logger,
	}
}

// CreateClient validates fields and stores a new client.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, fields client.Fields) (*client.Client, error) {
	// Evaluate guard
	if err := client.ValidateClient(fields, s.now()).Error(); err != nil {
		return nil, err
	}

	created, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("client created", slog.String("client_id", created.ID))
	return created, nil
}

// GetClient retrieves a client by ID.
func (s *ClientServiceImpl) GetClient(ctx context.Context, clientID string) (*client.Client, error) {
	c, ok := s.store.GetByID(clientID)
	if !ok {
		return nil, nil
	}
	return c, nil
}

// ListClients lists clients in storage order, applying filters here rather
// than in the store.
func (s *ClientServiceImpl) ListClients(ctx context.Context, filters primary.ClientFilters) ([]*client.Client, error) {
	records := s.store.List()

	clients := make([]*client.Client, 0, len(records))
	for i := range records {
		c := &records[i]
		if filters.Status.Valid() && c.PersonalInfo.Status.Current != filters.Status {
			continue
		}
		if !c.Matches(filters.Search) {
			continue
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// UpdateClient merges patch onto the current record, validates the result,
// and stores it.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, clientID string, patch client.Patch) (*client.Client, error) {
	current, ok := s.store.GetByID(clientID)
	if !ok {
		return nil, nil
	}

	// Evaluate guard against the record as it would be stored
	merged := patch.Apply(*current)
	if err := client.ValidateClient(merged.Fields(), s.now()).Error(); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, clientID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	s.logger.Info("client updated", slog.String("client_id", clientID))
	return updated, nil
}

// DeleteClient hard-deletes a client.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, clientID string) (bool, error) {
	removed, err := s.store.Delete(ctx, clientID)
	if err != nil {
		return false, err
	}
	if removed {
		s.logger.Info("client deleted", slog.String("client_id", clientID))
	}
	return removed, nil
}

// ValidateClient checks a whole candidate record.
func (s *ClientServiceImpl) ValidateClient(fields client.Fields) client.GuardResult {
	return client.ValidateClient(fields, s.now())
}

// ValidateField checks the rules attached to a single field.
func (s *ClientServiceImpl) ValidateField(field client.Field, fields client.Fields) client.GuardResult {
	return client.ValidateField(field, fields, s.now())
}

// Summary counts clients in total and per status, and picks out recent
// changes and upcoming expiries.
func (s *ClientServiceImpl) Summary(ctx context.Context) (*primary.ClientSummary, error) {
	records := s.store.List()
	now := s.now()

	summary := &primary.ClientSummary{
		Total:        len(records),
		ByStatus:     make(map[client.Status]int, len(client.Statuses)),
		ExpiryWindow: expiryWindowDays * 24 * time.Hour,
	}
	for _, st := range client.Statuses {
		summary.ByStatus[st] = 0
	}

	all := make([]*client.Client, len(records))
	for i := range records {
		c := &records[i]
		all[i] = c
		summary.ByStatus[c.PersonalInfo.Status.Current]++

		if exp := c.PersonalInfo.Status.ExpiryDate; exp != nil {
			if days := client.DaysUntil(now, *exp); days >= 0 && days <= expiryWindowDays {
				summary.ExpiringSoon = append(summary.ExpiringSoon, c)
			}
		}
	}

	sort.SliceStable(summary.ExpiringSoon, func(i, j int) bool {
		return summary.ExpiringSoon[i].PersonalInfo.Status.ExpiryDate.Before(*summary.ExpiringSoon[j].PersonalInfo.Status.ExpiryDate)
	})

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	if len(all) > recentLimit {
		all = all[:recentLimit]
	}
	summary.RecentlyUpdated = all

	return summary, nil
}

// Ensure ClientServiceImpl implements the interface
var _ primary.ClientService = (*ClientServiceImpl)(nil)
