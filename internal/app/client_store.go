package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/crm/internal/core/client"
	"github.com/example/crm/internal/observability"
	"github.com/example/crm/internal/ports/secondary"
)

// ClientStore owns the ordered client collection and its durable slot.
// The whole collection is encoded and written as one unit on every mutation;
// the in-memory mirror is only replaced once that write has succeeded.
type ClientStore struct {
	mu      sync.RWMutex
	slots   secondary.SlotStore
	key     string
	records []client.Client

	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// StoreOption customizes a ClientStore.
type StoreOption func(*ClientStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *ClientStore) { s.now = now }
}

// WithIDGenerator replaces the UUID generator, for tests.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *ClientStore) { s.newID = newID }
}

// WithLogger sets the logger used for slot diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *ClientStore) { s.logger = logger }
}

// OpenClientStore creates the store and loads the slot under key.
// Unreadable slot contents open as an empty collection; only a failure of
// the slot backend itself is returned.
func OpenClientStore(ctx context.Context, slots secondary.SlotStore, key string, opts ...StoreOption) (*ClientStore, error) {
	s := &ClientStore{
		slots:  slots,
		key:    key,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: observability.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("slot", key))

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the slot into memory.
func (s *ClientStore) Reload(ctx context.Context) error {
	data, err := s.slots.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}

	records := s.decode(data)

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Debug("slot loaded", slog.Int("clients", len(records)))
	return nil
}

// List returns every record in insertion order.
func (s *ClientStore) List() []client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]client.Client, len(s.records))
	for i, c := range s.records {
		out[i] = c.Clone()
	}
	return out
}

// GetByID looks a record up by exact id.
func (s *ClientStore) GetByID(id string) (*client.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		c := s.records[i].Clone()
		return &c, true
	}
	return nil, false
}

// Create appends a new record built from fields and persists the collection.
// Fields are trusted; callers validate first.
func (s *ClientStore) Create(ctx context.Context, fields client.Fields) (*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := client.NewClient(s.newID(), fields, s.now())

	next := make([]client.Client, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, created)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	out := created.Clone()
	return &out, nil
}

// Update merges patch into the record with the given id and persists.
// Returns nil, nil when no record matches; nothing is written then.
func (s *ClientStore) Update(ctx context.Context, id string, patch client.Patch) (*client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}

	current := s.records[i]
	merged := patch.Apply(current)
	merged.UpdatedAt = s.now()
	if merged.UpdatedAt.Before(current.CreatedAt) {
		merged.UpdatedAt = current.CreatedAt
	}

	next := make([]client.Client, len(s.records))
	copy(next, s.records)
	next[i] = merged

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	out := merged.Clone()
	return &out, nil
}

// Delete removes the record with the given id. It reports false, without
// writing, when no record matches.
func (s *ClientStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := make([]client.Client, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// persist writes next to the slot and, on success, makes it current.
// Callers hold the write lock.
func (s *ClientStore) persist(ctx context.Context, next []client.Client) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode clients: %w", err)
	}

	if err := s.slots.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save clients: %w", err)
	}

	s.records = next
	s.logger.Debug("slot written", slog.Int("clients", len(next)), slog.Int("bytes", len(data)))
	return nil
}

// decode parses slot contents, falling back to an empty collection when
// they cannot be read.
func (s *ClientStore) decode(data []byte) []client.Client {
	records, err := DecodeClients(data)
	if err != nil {
		s.logger.Warn("slot unreadable, starting empty", slog.String("error", err.Error()))
		return []client.Client{}
	}
	return records
}

// DecodeClients parses slot contents as a list of records with unique,
// non-empty ids. Empty contents decode to an empty list.
func DecodeClients(data []byte) ([]client.Client, error) {
	if len(data) == 0 {
		return []client.Client{}, nil
	}

	var records []client.Client
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	for i, c := range records {
		if c.ID == "" {
			return nil, fmt.Errorf("record %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate id %s", c.ID)
		}
		seen[c.ID] = struct{}{}
	}

	if records == nil {
		records = []client.Client{}
	}
	return records, nil
}

func (s *ClientStore) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
