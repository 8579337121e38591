// Package session tracks the profile of the currently authenticated user.
// There is exactly one active session per process; the pointer is persisted
// so it survives restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"fbfinance/internal/core"
	"fbfinance/internal/store"
)

// ErrNoSession is returned by operations that require an authenticated user.
var ErrNoSession = errors.New("no active session")

type Manager struct {
	mu      sync.Mutex
	store   store.Store
	profile core.Profile
	active  bool
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Restore reads the persisted session pointer on process start. A missing or
// malformed pointer simply leaves the process unauthenticated.
func (m *Manager) Restore(ctx context.Context) (core.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.store.Get(ctx, store.KeyActiveSession)
	if errors.Is(err, store.ErrNotFound) {
		return core.Profile{}, false, nil
	}
	if err != nil {
		return core.Profile{}, false, fmt.Errorf("read session: %w", err)
	}
	var p core.Profile
	if err := json.Unmarshal(raw, &p); err != nil || p.Email == "" {
		return core.Profile{}, false, nil
	}
	m.profile = p
	m.active = true
	return p, true, nil
}

// Start persists the given profile as the active session.
func (m *Manager) Start(ctx context.Context, p core.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Put(ctx, store.KeyActiveSession, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	m.profile = p
	m.active = true
	return nil
}

// End clears the persisted pointer and resets the in-memory profile to
// anonymous defaults. Confirming intent is the caller's concern.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, store.KeyActiveSession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.profile = core.Profile{}
	m.active = false
	return nil
}

// Current returns the active profile, if any.
func (m *Manager) Current() (core.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile, m.active
}

// Update replaces the in-memory and persisted profile of an active session,
// used after profile edits.
func (m *Manager) Update(ctx context.Context, p core.Profile) error {
	m.mu.Lock()
	active := m.active
	m.mu.Unlock()
	if !active {
		return ErrNoSession
	}
	return m.Start(ctx, p)
}
