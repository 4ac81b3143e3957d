package core

import (
	"errors"
	"testing"
)

func TestNewRedisStore_RequiresURL(t *testing.T) {
	_, err := NewRedisStore(RedisStoreOptions{})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewRedisStore() without URL error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestNewRedisStore_RejectsMalformedURL(t *testing.T) {
	_, err := NewRedisStore(RedisStoreOptions{RedisURL: "not-a-redis-url"})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewRedisStore() with malformed URL error = %v, want ErrInvalidConfiguration", err)
	}
}
