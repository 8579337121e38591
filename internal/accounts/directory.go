// Package accounts manages the registry of credential records: registration
// with unique normalized emails, credential verification, and profile edits.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"fbfinance/internal/core"
	"fbfinance/internal/store"
)

var (
	ErrMissingFields  = errors.New("missing required fields")
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a login attempt cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoAccount          = errors.New("no such account")
	ErrRegistry           = errors.New("registry unreadable")
)

// Credential is one registry entry. The password is stored only as an
// argon2id salt$hash pair.
type Credential struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	PasswordHash       string `json:"passwordHash"`
	ProfilePic         string `json:"profilePic"`
	MonthlyIncomeCents int64  `json:"monthlyIncomeCents"`
}

// ProfilePatch carries optional profile edits; nil fields are left untouched.
type ProfilePatch struct {
	Name               *string
	ProfilePic         *string
	MonthlyIncomeCents *int64
}

// Directory manages the email -> credential mapping persisted under the
// users_registry key.
type Directory struct {
	mu    sync.Mutex
	store store.Store
}

func NewDirectory(s store.Store) *Directory {
	return &Directory{store: s}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Uniqueness and lookups are always on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// avatarURL builds the generated-avatar reference assigned at registration.
func avatarURL(name string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name)
}

// Register appends a new credential record. The email must not already be
// present; monthly income starts at zero and the avatar is generated from
// the name.
func (d *Directory) Register(ctx context.Context, name, email, password string) error {
	email = NormalizeEmail(email)
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		if r.Email == email {
			return ErrDuplicateEmail
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	records = append(records, Credential{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		ProfilePic:   avatarURL(name),
	})
	return d.save(ctx, records)
}

// Authenticate verifies the email/password pair and derives the session
// profile. Unknown email and wrong password fail identically.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (core.Profile, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return core.Profile{}, ErrMissingFields
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load(ctx)
	if err != nil {
		return core.Profile{}, err
	}
	for _, r := range records {
		if r.Email != email {
			continue
		}
		if !VerifyPassword(r.PasswordHash, password) {
			break
		}
		return profileOf(r), nil
	}
	return core.Profile{}, ErrInvalidCredentials
}

// UpdateProfile merges the patch into the matching record in place and
// returns the updated profile.
func (d *Directory) UpdateProfile(ctx context.Context, email string, patch ProfilePatch) (core.Profile, error) {
	email = NormalizeEmail(email)

	d.mu.Lock()
	defer d.mu.Unlock()

	records, err := d.load(ctx)
	if err != nil {
		return core.Profile{}, err
	}
	for i := range records {
		if records[i].Email != email {
			continue
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
			records[i].Name = *patch.Name
		}
		if patch.ProfilePic != nil && *patch.ProfilePic != "" {
			records[i].ProfilePic = *patch.ProfilePic
		}
		if patch.MonthlyIncomeCents != nil && *patch.MonthlyIncomeCents >= 0 {
			records[i].MonthlyIncomeCents = *patch.MonthlyIncomeCents
		}
		if err := d.save(ctx, records); err != nil {
			return core.Profile{}, err
		}
		return profileOf(records[i]), nil
	}
	return core.Profile{}, ErrNoAccount
}

// Count returns the number of registered accounts.
func (d *Directory) Count(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	records, err := d.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func profileOf(r Credential) core.Profile {
	pic := r.ProfilePic
	if pic == "" {
		pic = avatarURL(r.Name)
	}
	return core.Profile{
		Name:               r.Name,
		Email:              r.Email,
		ProfilePic:         pic,
		MonthlyIncomeCents: r.MonthlyIncomeCents,
		Currency:           core.DisplayCurrency,
	}
}

func (d *Directory) load(ctx context.Context) ([]Credential, error) {
	raw, err := d.store.Get(ctx, store.KeyUsersRegistry)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var records []Credential
	if err := json.Unmarshal(raw, &records); err != nil {
		// A corrupt registry must not crash the app; surface a generic
		// processing error and leave the stored payload untouched.
		return nil, ErrRegistry
	}
	return records, nil
}

func (d *Directory) save(ctx context.Context, records []Credential) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	if err := d.store.Put(ctx, store.KeyUsersRegistry, raw); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}
