package userdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbfinance/internal/core"
	"fbfinance/internal/store"
)

func TestLoadAbsentBlob(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(store.NewMemory())

	blob, ok, err := repo.Load(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, blob.Transactions)
	assert.Empty(t, blob.Goals)
	assert.Equal(t, core.DefaultTheme(), blob.Theme)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(store.NewMemory())

	blob := core.EmptyUserData()
	blob.Transactions = []core.Transaction{{
		ID:          "t1",
		Description: "Mercado",
		Amount:      core.Money{Cents: 4550},
		Category:    "Alimentação",
		Type:        core.Expense,
		Date:        core.NewDate(2025, 3, 9),
	}}
	blob.Theme.DarkMode = true
	require.NoError(t, repo.Save(ctx, "ana@x.com", blob))

	got, ok, err := repo.Load(ctx, "ana@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, int64(4550), got.Transactions[0].Amount.Cents)
	assert.True(t, got.Theme.DarkMode)

	// Blobs are isolated per email.
	_, ok, err = repo.Load(ctx, "outro@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadCorruptBlobDefaults(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Put(ctx, store.UserDataKey("ana@x.com"), []byte("%%%")))

	repo := NewRepository(mem)
	blob, ok, err := repo.Load(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, blob.Transactions)
	assert.Equal(t, core.DefaultTheme(), blob.Theme)
}
