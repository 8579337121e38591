// Package store provides the namespaced key-value persistence layer.
//
// The application keeps three kinds of keys: the user registry, the active
// session pointer, and one data blob per registered email. Values are JSON
// payloads; the store itself is agnostic to their shape.
package store

import (
	"context"
	"errors"
)

// Conceptual key space of the storage backend.
const (
	KeyUsersRegistry = "users_registry"
	KeyActiveSession = "active_session"

	userDataPrefix = "user_data_"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Store is the abstract persistence backend. Implementations must be safe
// for use from a single logical actor; no cross-process coordination is
// provided or expected.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// UserDataKey returns the blob key for a normalized email.
func UserDataKey(email string) string {
	return userDataPrefix + email
}
