package core

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_GetAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value, err := store.Get(ctx, "no-such-slot")
	if err != nil {
		t.Errorf("Get() returned unexpected error: %v", err)
	}
	if value != "" {
		t.Errorf("Get() for absent key = %q, want empty string", value)
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value string
		ttl   time.Duration
	}{
		{name: "simple value", key: "currentUser", value: `{"id":"1"}`, ttl: 0},
		{name: "with ttl", key: "tmp", value: "v", ttl: time.Hour},
		{name: "overwrite", key: "currentUser", value: `{"id":"2"}`, ttl: 0},
		{name: "empty value", key: "empty", value: "", ttl: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, err := store.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "session", "v", time.Nanosecond); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	value, err := store.Get(ctx, "session")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if value != "" {
		t.Errorf("Get() after expiry = %q, want empty string", value)
	}

	exists, err := store.Exists(ctx, "session")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if exists {
		t.Error("Exists() after expiry = true, want false")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "registeredUsers", "[]", 0); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Delete(ctx, "registeredUsers"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	exists, err := store.Exists(ctx, "registeredUsers")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if exists {
		t.Error("Exists() after delete = true, want false")
	}

	// Deleting an absent key is not an error
	if err := store.Delete(ctx, "registeredUsers"); err != nil {
		t.Errorf("Delete() of absent key returned error: %v", err)
	}
}
