package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrSlotNotFound is returned by Slot.Get when nothing is stored under the key
var ErrSlotNotFound = errors.New("slot not found")

// Slot is a durable key-value location holding one opaque value per key.
// Put replaces the whole value in one step.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SQLiteSlot stores slots as rows of the kv_slots table
type SQLiteSlot struct {
	db *sql.DB
}

// NewSQLiteSlot creates a slot store over an opened sqlite database
func NewSQLiteSlot(db *sql.DB) *SQLiteSlot {
	return &SQLiteSlot{db: db}
}

// Get returns the value stored under key
func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT slot_value FROM kv_slots WHERE slot_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Put overwrites the value stored under key
func (s *SQLiteSlot) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_slots (slot_key, slot_value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(slot_key) DO UPDATE SET slot_value = excluded.slot_value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error
func (s *SQLiteSlot) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_slots WHERE slot_key = ?", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
