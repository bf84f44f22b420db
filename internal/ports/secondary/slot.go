// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces the application uses to reach storage.
package secondary

import "context"

// SlotStore defines the secondary port for the durable named slot.
// A slot holds one opaque serialized value that is read and written whole.
type SlotStore interface {
	// Load returns the slot's contents, or nil with no error if the slot
	// has never been written.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the slot's contents atomically.
	Save(ctx context.Context, key string, data []byte) error
}
