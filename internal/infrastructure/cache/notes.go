package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnquangdev/lecture-notes/internal/domain/entities"
)

// Store is a string key-value store with per-entry expiry
type Store interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// NotesCache stores finished lecture notes as JSON
type NotesCache struct {
	store Store
	ttl   time.Duration
}

// NewNotesCache wraps store; entries live for ttl
func NewNotesCache(store Store, ttl time.Duration) *NotesCache {
	return &NotesCache{store: store, ttl: ttl}
}

// Get returns the cached notes for key, or nil on a miss
func (c *NotesCache) Get(ctx context.Context, key string) (*entities.LectureNotes, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	var notes entities.LectureNotes
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		// a corrupt entry is a miss
		_ = c.store.Delete(ctx, key)
		return nil, nil
	}
	return &notes, nil
}

// Set caches notes under key
func (c *NotesCache) Set(ctx context.Context, key string, notes *entities.LectureNotes) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	return c.store.Set(ctx, key, string(data), c.ttl)
}

// Close releases the underlying store
func (c *NotesCache) Close() error {
	return c.store.Close()
}
