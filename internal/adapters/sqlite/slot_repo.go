// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/crm/internal/ports/secondary"
)

// SlotRepository implements secondary.SlotStore with SQLite.
type SlotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates a new SQLite slot repository.
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Load retrieves the value stored under key.
func (r *SlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM slots WHERE key = ?",
		key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, nil // Never written; not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", key, err)
	}

	return value, nil
}

// Save upserts the value stored under key in a single statement.
func (r *SlotRepository) Save(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}

	return nil
}

// Keys lists the slot keys present, ordered by name.
func (r *SlotRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key FROM slots ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan slot key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Ensure SlotRepository implements the interface
var _ secondary.SlotStore = (*SlotRepository)(nil)
