// Package userdata reads and writes one user's full application state as a
// single blob keyed by email.
package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fbfinance/internal/core"
	"fbfinance/internal/store"
)

type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load fetches the persisted blob for the given email. A missing or
// unreadable blob yields the empty state with ok=false; first login always
// lands here.
func (r *Repository) Load(ctx context.Context, email string) (core.UserData, bool, error) {
	raw, err := r.store.Get(ctx, store.UserDataKey(email))
	if errors.Is(err, store.ErrNotFound) {
		return core.EmptyUserData(), false, nil
	}
	if err != nil {
		return core.EmptyUserData(), false, fmt.Errorf("read user data: %w", err)
	}
	var blob core.UserData
	if err := json.Unmarshal(raw, &blob); err != nil {
		// Defaulting is safer than failing: a corrupt blob must not lock
		// the user out of the application.
		return core.EmptyUserData(), false, nil
	}
	if blob.Theme.PrimaryColor == "" {
		blob.Theme = core.DefaultTheme()
	}
	return blob, true, nil
}

// Save replaces the full blob. There is no partial or merge write; every
// mutation persists the whole state.
func (r *Repository) Save(ctx context.Context, email string, blob core.UserData) error {
	raw, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode user data: %w", err)
	}
	if err := r.store.Put(ctx, store.UserDataKey(email), raw); err != nil {
		return fmt.Errorf("write user data: %w", err)
	}
	return nil
}
