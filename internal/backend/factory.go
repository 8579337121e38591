// Package backend selects and constructs the key-value store implementation
// the rest of the application persists through.
package backend

import (
	"fmt"

	"fbfinance/internal/config"
	"fbfinance/internal/log"
	"fbfinance/internal/store"
)

// Type identifies a storage backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

// IsValid reports whether the backend type is supported.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	}
	return false
}

// Result bundles an opened store with its cleanup function.
type Result struct {
	Store   store.Store
	Cleanup func() error
}

// Open constructs the store named by cfg.DataBackend.
func Open(cfg *config.Config, logger *log.Logger) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	l := logger.WithComponent(log.ComponentStore)

	switch t {
	case SQLiteBackend:
		s, err := store.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		l.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: s, Cleanup: s.Close}, nil
	default:
		l.Info("Initialized memory backend")
		return &Result{Store: store.NewMemory(), Cleanup: func() error { return nil }}, nil
	}
}
