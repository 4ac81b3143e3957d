package core

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of the Store interface. It is
// the default backend and mirrors browser local storage: process-local,
// no durability across restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	slots  map[string]storeEntry
	logger Logger
}

type storeEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots:  make(map[string]storeEntry),
		logger: &NoOpLogger{},
	}
}

// SetLogger configures the logger for this store
func (m *MemoryStore) SetLogger(logger Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Get retrieves a value; absent or expired keys yield the empty string
func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.slots[key]
	if !exists {
		m.logger.Debug("State read miss", map[string]interface{}{
			"operation": "store_get",
			"key":       key,
		})
		return "", nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.logger.Debug("State entry expired", map[string]interface{}{
			"operation":  "store_get",
			"key":        key,
			"expired_at": entry.expiresAt.Format(time.RFC3339),
		})
		return "", nil
	}

	m.logger.Debug("State read hit", map[string]interface{}{
		"operation": "store_get",
		"key":       key,
	})
	return entry.value, nil
}

// Set stores a value with optional TTL
func (m *MemoryStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := storeEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.slots[key] = entry

	m.logger.Debug("State write", map[string]interface{}{
		"operation":  "store_set",
		"key":        key,
		"value_size": len(value),
		"has_ttl":    ttl > 0,
	})
	return nil
}

// Delete removes a value
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.slots[key]
	delete(m.slots, key)

	m.logger.Debug("State delete", map[string]interface{}{
		"operation": "store_delete",
		"key":       key,
		"existed":   existed,
	})
	return nil
}

// Exists checks if a key holds a live value
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.slots[key]
	if !exists {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return false, nil
	}
	return true, nil
}
